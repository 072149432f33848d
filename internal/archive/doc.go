// Package archive bundles a staging directory into the distributable
// <Name>_ResourcePack.zip and reads finished packs back for inspection.
//
// Archives are written to a temporary sibling and renamed into place, so a
// failed run never leaves a truncated pack under the final name. Writers of
// the same archive are serialised with an advisory lock on a hidden
// .<archive>.lock file next to it, which is left in place.
package archive
