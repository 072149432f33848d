// Command phirapack assembles Phira resource packs from a pack file or flags,
// and provides helpers to inspect finished archives, review build history,
// and tidy leftover staging directories.
package main
