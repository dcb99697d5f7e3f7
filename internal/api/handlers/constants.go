package handlers

const (
	defaultVoicingOctave = 4
	minVoicingOctave     = -1
	maxVoicingOctave     = 9

	maxHashInputBytes = 64 * 1024

	statusDisabled = "disabled"
	statusEnabled  = "enabled"
)
