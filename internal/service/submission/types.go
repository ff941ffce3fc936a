package submission

import (
	"crm-console-backend/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

const (
	FilterAll        = "all"
	FilterUnassigned = "unassigned"
)

// Filter is the immutable criteria value the console passes in. Every
// dimension defaults to "all"/empty, which matches everything.
type Filter struct {
	Type     string // "all" or a submission type
	Search   string // case-insensitive substring
	Status   string // "all" or a display status
	Assignee string // "all", "unassigned", or a staff id
}

type CreateInquiryParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Country       string
	Subject       string
	Message       string
	ItemRef       string
	Price         *int64
	Mileage       *int64
	Category      model.InquiryCategory
}

type CreateSignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Country   string
	City      string
	Source    string
}

type CreateOnboardingParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Country       string
	Vehicles      []model.VehicleSpec
	Destination   string
	PreferCall    bool
	PreferredDate string
	PreferredTime string
	Message       string
}

// Stats carries the canonical triage counters. PendingAssignment counts
// records with no assignee whose resolved status is not terminal;
// AwaitingResponse counts records whose resolved status is new, pending or
// in_progress. Both run through the resolver, never the raw status field.
type Stats struct {
	Total             int
	ByType            map[model.SubmissionType]int
	PendingAssignment int
	AwaitingResponse  int
}
