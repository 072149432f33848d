package params

// ImageRole names a note sprite slot in a resource pack.
type ImageRole string

const (
	ImageTap      ImageRole = "tap"
	ImageTapDuo   ImageRole = "tap_duo"
	ImageDrag     ImageRole = "drag"
	ImageDragDuo  ImageRole = "drag_duo"
	ImageFlick    ImageRole = "flick"
	ImageFlickDuo ImageRole = "flick_duo"
	ImageHold     ImageRole = "hold"
	ImageHoldDuo  ImageRole = "hold_duo"
)

// ImageRoles lists the image roles in staging order.
var ImageRoles = []ImageRole{
	ImageTap, ImageTapDuo,
	ImageDrag, ImageDragDuo,
	ImageFlick, ImageFlickDuo,
	ImageHold, ImageHoldDuo,
}

var imageFileNames = map[ImageRole]string{
	ImageTap:      "click.png",
	ImageTapDuo:   "click_mh.png",
	ImageDrag:     "drag.png",
	ImageDragDuo:  "drag_mh.png",
	ImageFlick:    "flick.png",
	ImageFlickDuo: "flick_mh.png",
	ImageHold:     "hold.png",
	ImageHoldDuo:  "hold_mh.png",
}

// FileName returns the canonical archive member name for the role.
func (r ImageRole) FileName() string {
	return imageFileNames[r]
}

// Valid reports whether r is a known image role.
func (r ImageRole) Valid() bool {
	_, ok := imageFileNames[r]
	return ok
}

// AudioRole names a sound slot in a resource pack.
type AudioRole string

const (
	AudioTap      AudioRole = "tap"
	AudioDrag     AudioRole = "drag"
	AudioFlick    AudioRole = "flick"
	AudioEndMusic AudioRole = "end_music"
)

// AudioRoles lists the audio roles in staging order.
var AudioRoles = []AudioRole{AudioTap, AudioDrag, AudioFlick, AudioEndMusic}

var audioManifestKeys = map[AudioRole]string{
	AudioTap:      "tap",
	AudioDrag:     "drag",
	AudioFlick:    "flick",
	AudioEndMusic: "endMusic",
}

// ManifestKey returns the key used for the role under the manifest audio map.
func (r AudioRole) ManifestKey() string {
	return audioManifestKeys[r]
}

// Valid reports whether r is a known audio role.
func (r AudioRole) Valid() bool {
	_, ok := audioManifestKeys[r]
	return ok
}

const (
	// SynthesizedHitFxName is the member name of a generated sprite sheet.
	SynthesizedHitFxName = "hitFx.png"
	// SuppliedHitFxName is the member name of a user supplied sprite sheet.
	SuppliedHitFxName = "hit_fx.png"
	// ManifestName is the member name of the pack manifest.
	ManifestName = "info.yml"
)

// ReservedNames lists the member names the builder writes itself. Staged
// audio must not reuse any of them.
func ReservedNames() []string {
	names := []string{ManifestName, SynthesizedHitFxName, SuppliedHitFxName}
	for _, role := range ImageRoles {
		names = append(names, role.FileName())
	}
	return names
}
