package wizard

// Guard error codes. They travel in response metadata as error_code so
// clients can react programmatically; the message itself is localized.
const (
	GuardStageMismatch        = "stage_mismatch"
	GuardInvalidAction        = "invalid_action"
	GuardAlreadyAnalyzed      = "already_analyzed"
	GuardReadinessNotMet      = "readiness_not_met"
	GuardMissingFields        = "missing_fields"
	GuardTailoringUnavailable = "tailoring_unavailable"
	GuardPostingTooShort      = "posting_too_short"
)

// readinessMet reports whether document generation may start. Layout
// validity is checked separately by the generate handlers.
func readinessMet(contactConfirmed, educationConfirmed bool) bool {
	return contactConfirmed && educationConfirmed
}
