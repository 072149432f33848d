// Package params defines the BuildParameters record consumed by the pack
// builder, its defaults, validation, and the TOML pack file format used by
// the CLI to describe a pack.
package params
