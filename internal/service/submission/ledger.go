package submission

import (
	"time"

	"crm-console-backend/internal/model"
)

// Assign sets the single owner of a submission, replacing any prior one.
// Assigning an inquiry that is still new also advances it to in_progress:
// taking ownership is the start of triage. Signups and onboarding requests
// keep their status untouched.
func Assign(item model.SubmissionItem, staffID, staffName, assignedBy string, now time.Time) model.SubmissionItem {
	nowStr := now.UTC().Format(time.RFC3339)

	item.Assignee = &model.AssigneeRef{
		StaffID:    staffID,
		Name:       staffName,
		AssignedBy: assignedBy,
		AssignedAt: nowStr,
	}
	if item.Type == model.SubmissionTypeInquiry && item.Status == model.SubmissionStatusNew {
		item.Status = model.SubmissionStatusInProgress
	}
	item.UpdatedAt = nowStr
	return item
}

// Unassign clears the owner. Status is left as-is, even for inquiries.
func Unassign(item model.SubmissionItem, now time.Time) model.SubmissionItem {
	item.Assignee = nil
	item.UpdatedAt = now.UTC().Format(time.RFC3339)
	return item
}
