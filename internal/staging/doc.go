// Package staging owns the per-build staging directory: creating it, copying
// user assets into it under their canonical names, and removing it again.
//
// It also sweeps leftover staging directories from interrupted runs. Only
// entries carrying the DirPrefix are considered, so a shared root such as the
// system temp directory is safe to clean.
package staging
