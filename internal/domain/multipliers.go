package domain

import "strings"

const (
	maxShortClipSeconds  = 5
	maxMediumClipSeconds = 10
	maxLongClipSeconds   = 15
)

// ImageQualityMultipliers maps an image quality setting to multiplier names.
// Unrecognized settings yield no multipliers.
func ImageQualityMultipliers(quality string) []string {
	switch strings.ToLower(strings.TrimSpace(quality)) {
	case "standard":
		return []string{MultiplierStandardQuality}
	case "high", "hd":
		return []string{MultiplierHighQuality}
	case "ultra":
		return []string{MultiplierUltraQuality}
	default:
		return nil
	}
}

// VideoMultipliers maps a clip duration and output resolution to multiplier names.
// Durations round up to the nearest priced bucket; anything past 15s is billed as 30s.
func VideoMultipliers(durationSeconds int, resolution string) []string {
	var names []string

	switch {
	case durationSeconds <= 0:
	case durationSeconds <= maxShortClipSeconds:
		names = append(names, MultiplierDuration5s)
	case durationSeconds <= maxMediumClipSeconds:
		names = append(names, MultiplierDuration10s)
	case durationSeconds <= maxLongClipSeconds:
		names = append(names, MultiplierDuration15s)
	default:
		names = append(names, MultiplierDuration30s)
	}

	switch strings.ToLower(strings.TrimSpace(resolution)) {
	case "4k", "2160p", "3840x2160":
		names = append(names, Multiplier4KQuality)
	case "hd", "720p", "1080p", "1280x720", "1920x1080":
		names = append(names, MultiplierHDQuality)
	}

	return names
}

// ScriptMultipliers returns the multipliers for a script request.
func ScriptMultipliers(longForm bool) []string {
	if longForm {
		return []string{MultiplierLongForm}
	}
	return nil
}
