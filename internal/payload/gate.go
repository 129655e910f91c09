package payload

import "rumbeacon/internal/commstate"

// Global gate: capture switched off or communication stopped
func (builder *Builder) captureDisabled() (disabled bool) {
	disabled = builder.state.Capture() == commstate.CaptureOff || builder.state.IsCommunicationStopped()
	if disabled {
		builder.Metrics.RecordsGated.Add(1)
	}
	return
}

func (builder *Builder) captureErrorsDisabled() (disabled bool) {
	if builder.captureDisabled() {
		disabled = true
		return
	}
	disabled = builder.state.CaptureErrors() == commstate.CaptureOff
	if disabled {
		builder.Metrics.RecordsGated.Add(1)
	}
	return
}

func (builder *Builder) captureCrashesDisabled() (disabled bool) {
	if builder.captureDisabled() {
		disabled = true
		return
	}
	disabled = builder.state.CaptureCrashes() == commstate.CaptureOff
	if disabled {
		builder.Metrics.RecordsGated.Add(1)
	}
	return
}
