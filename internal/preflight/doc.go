// Package preflight provides readiness checks for the filesystem locations
// phirapack writes to.
//
// These checks run in two contexts:
//   - The builder calls CheckDirectoryAccess on the destination before any
//     staging work so an unwritable output directory fails fast.
//   - The CLI "phirapack config validate" command uses RunAll to display the
//     state of every configured location.
package preflight
