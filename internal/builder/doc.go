// Package builder runs the pack assembly state machine.
//
// A build moves through Idle, StagingCreated, BasicAssetsCopied,
// HitEffectResolved, ManifestWritten, Archived and CleanedUp. Any error
// moves it to Failed, after which the staging directory is still removed.
// Build never returns an error or panics; the outcome is carried entirely by
// Result.
package builder
