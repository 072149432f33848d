package logging

import "strings"

// FormatSubject builds the build/stage subject string used in console output.
// Build identifiers are shortened to their first eight characters.
func FormatSubject(buildID, stage string) string {
	buildID = strings.TrimSpace(buildID)
	stage = strings.TrimSpace(stage)
	if len(buildID) > 8 {
		buildID = buildID[:8]
	}
	switch {
	case buildID != "" && stage != "":
		return "Build " + buildID + " (" + stage + ")"
	case buildID != "":
		return "Build " + buildID
	default:
		return stage
	}
}
