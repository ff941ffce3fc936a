package model

import "fmt"

type SubmissionType string

const (
	SubmissionTypeInquiry    SubmissionType = "inquiry"
	SubmissionTypeSignup     SubmissionType = "signup"
	SubmissionTypeOnboarding SubmissionType = "onboarding"
)

type SubmissionStatus string

const (
	SubmissionStatusNew        SubmissionStatus = "new"
	SubmissionStatusInProgress SubmissionStatus = "in_progress"
	SubmissionStatusResponded  SubmissionStatus = "responded"
	SubmissionStatusClosed     SubmissionStatus = "closed"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

type InquiryCategory string

const (
	InquiryCategoryPrice        InquiryCategory = "price"
	InquiryCategoryAvailability InquiryCategory = "availability"
	InquiryCategoryShipping     InquiryCategory = "shipping"
	InquiryCategoryInspection   InquiryCategory = "inspection"
	InquiryCategoryGeneral      InquiryCategory = "general"
)

// AssigneeRef records the staff member owning a submission and who handed
// it to them.
type AssigneeRef struct {
	StaffID    string `dynamodbav:"staffId"`
	Name       string `dynamodbav:"name"`
	AssignedBy string `dynamodbav:"assignedBy,omitempty"`
	AssignedAt string `dynamodbav:"assignedAt,omitempty"`
}

type InquiryDetails struct {
	ItemRef  string          `dynamodbav:"itemRef"`
	Price    *int64          `dynamodbav:"price,omitempty"`
	Mileage  *int64          `dynamodbav:"mileage,omitempty"`
	Category InquiryCategory `dynamodbav:"category"`
}

type SignupDetails struct {
	FirstName          string             `dynamodbav:"firstName"`
	LastName           string             `dynamodbav:"lastName"`
	Company            string             `dynamodbav:"company,omitempty"`
	City               string             `dynamodbav:"city,omitempty"`
	Source             string             `dynamodbav:"source,omitempty"`
	VerificationStatus VerificationStatus `dynamodbav:"verificationStatus"`
}

type VehicleSpec struct {
	Make     string `dynamodbav:"make"`
	Model    string `dynamodbav:"model"`
	YearFrom int    `dynamodbav:"yearFrom,omitempty"`
	YearTo   int    `dynamodbav:"yearTo,omitempty"`
}

type OnboardingDetails struct {
	Vehicles      []VehicleSpec `dynamodbav:"vehicles"`
	Destination   string        `dynamodbav:"destination,omitempty"`
	PreferCall    bool          `dynamodbav:"preferCall"`
	PreferredDate string        `dynamodbav:"preferredDate,omitempty"`
	PreferredTime string        `dynamodbav:"preferredTime,omitempty"`
	ScheduledDate string        `dynamodbav:"scheduledDate,omitempty"`
	ScheduledTime string        `dynamodbav:"scheduledTime,omitempty"`
}

// SubmissionItem is a tagged union: Type selects which of the three detail
// pointers is populated. Callers derive lifecycle state through
// ResolveDisplayStatus; the generic Status field is only authoritative for
// inquiries.
type SubmissionItem struct {
	SubmissionID  string             `dynamodbav:"submissionId"`
	Number        string             `dynamodbav:"number"`
	Type          SubmissionType     `dynamodbav:"type"`
	CustomerName  string             `dynamodbav:"customerName"`
	CustomerEmail string             `dynamodbav:"customerEmail,omitempty"`
	CustomerPhone string             `dynamodbav:"customerPhone,omitempty"`
	Country       string             `dynamodbav:"country,omitempty"`
	Subject       string             `dynamodbav:"subject,omitempty"`
	Message       string             `dynamodbav:"message,omitempty"`
	Status        SubmissionStatus   `dynamodbav:"status"`
	Assignee      *AssigneeRef       `dynamodbav:"assignee,omitempty"`
	Inquiry       *InquiryDetails    `dynamodbav:"inquiry,omitempty"`
	Signup        *SignupDetails     `dynamodbav:"signup,omitempty"`
	Onboarding    *OnboardingDetails `dynamodbav:"onboarding,omitempty"`
	CreatedAt     string             `dynamodbav:"createdAt"`
	UpdatedAt     string             `dynamodbav:"updatedAt,omitempty"`
	RespondedAt   string             `dynamodbav:"respondedAt,omitempty"`
}

// WellFormed reports whether exactly the detail block matching Type is set.
func (s SubmissionItem) WellFormed() bool {
	switch s.Type {
	case SubmissionTypeInquiry:
		return s.Inquiry != nil && s.Signup == nil && s.Onboarding == nil
	case SubmissionTypeSignup:
		return s.Signup != nil && s.Inquiry == nil && s.Onboarding == nil
	case SubmissionTypeOnboarding:
		return s.Onboarding != nil && s.Inquiry == nil && s.Signup == nil
	}
	return false
}

func (s SubmissionItem) Validate() error {
	if s.SubmissionID == "" {
		return fmt.Errorf("submission: missing id")
	}
	if !s.WellFormed() {
		return fmt.Errorf("submission %s: details do not match type %q", s.SubmissionID, s.Type)
	}
	return nil
}
