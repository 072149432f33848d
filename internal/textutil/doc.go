// Package textutil provides small text helpers shared by the archiver and the
// CLI: pack-name normalisation for archive file names, display casing, and a
// generic conditional.
package textutil
