package builder

// State is a step of the build state machine.
type State string

const (
	StateIdle              State = "idle"
	StateStagingCreated    State = "staging_created"
	StateBasicAssetsCopied State = "basic_assets_copied"
	StateHitEffectResolved State = "hit_effect_resolved"
	StateManifestWritten   State = "manifest_written"
	StateArchived          State = "archived"
	StateCleanedUp         State = "cleaned_up"
	StateFailed            State = "failed"
)
