package logging

const (
	FieldComponent = "component"
	FieldSource    = "source"
	FieldOp        = "op"

	// Playback
	FieldState  = "state"
	FieldVolume = "volume"
	FieldEvent  = "event"

	// Status polling
	FieldURL      = "url"
	FieldDelay    = "delay"
	FieldFailures = "failures"
	FieldTrack    = "track"
)
