// Package packerr defines the error kinds produced by the pack assembly
// pipeline.
//
// Stage code wraps underlying failures with one of the exported markers via
// Wrap so the builder and the CLI can classify them with errors.Is without
// parsing messages:
//   - ErrValidation: the parameter record violates a precondition.
//   - ErrEnvironment: staging or destination directories are unusable.
//   - ErrMissingInput: a configured asset disappeared before it was copied.
//   - ErrSerialization: the manifest could not be encoded or written.
//   - ErrArchive: the archive writer failed.
package packerr
