package model

// DisplayStatus is the single normalized status vocabulary spanning all
// three submission types. Filtering and rendering consume this, never the
// raw per-type fields.
type DisplayStatus string

const (
	DisplayStatusNew        DisplayStatus = "new"
	DisplayStatusInProgress DisplayStatus = "in_progress"
	DisplayStatusResponded  DisplayStatus = "responded"
	DisplayStatusClosed     DisplayStatus = "closed"
	DisplayStatusPending    DisplayStatus = "pending"
	DisplayStatusVerified   DisplayStatus = "verified"
	DisplayStatusRejected   DisplayStatus = "rejected"
	DisplayStatusScheduled  DisplayStatus = "scheduled"
	DisplayStatusCompleted  DisplayStatus = "completed"
	DisplayStatusCancelled  DisplayStatus = "cancelled"
)

// ResolveDisplayStatus maps a submission to its display status. It is total:
// malformed records fall back to the generic status string.
//
// Signups report their verification status; the generic field is ignored.
// Onboarding lifecycle is derived, not stored: a closed record reads as
// completed, a record with a scheduled date as scheduled, anything else as
// new. Inquiries (and unknown types) report the generic status verbatim.
func ResolveDisplayStatus(s SubmissionItem) DisplayStatus {
	switch s.Type {
	case SubmissionTypeSignup:
		if s.Signup != nil && s.Signup.VerificationStatus != "" {
			return DisplayStatus(s.Signup.VerificationStatus)
		}
	case SubmissionTypeOnboarding:
		if s.Status == SubmissionStatusClosed {
			return DisplayStatusCompleted
		}
		if s.Onboarding != nil && s.Onboarding.ScheduledDate != "" {
			return DisplayStatusScheduled
		}
		return DisplayStatusNew
	}
	return DisplayStatus(s.Status)
}

// TerminalDisplayStatus reports whether a display status ends the triage
// lifecycle for its record.
func TerminalDisplayStatus(status DisplayStatus) bool {
	switch status {
	case DisplayStatusClosed, DisplayStatusRejected, DisplayStatusCancelled, DisplayStatusCompleted:
		return true
	}
	return false
}
