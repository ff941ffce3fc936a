package dto

// CreateSubmissionRequest mirrors the stored tagged union: Type selects
// which payload block the intake expects.
type CreateSubmissionRequest struct {
	Type       string                   `json:"type"`
	Inquiry    *CreateInquiryRequest    `json:"inquiry,omitempty"`
	Signup     *CreateSignupRequest     `json:"signup,omitempty"`
	Onboarding *CreateOnboardingRequest `json:"onboarding,omitempty"`
}

type CreateInquiryRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Country       string `json:"country,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Message       string `json:"message,omitempty"`
	ItemRef       string `json:"itemRef"`
	Price         *int64 `json:"price,omitempty"`
	Mileage       *int64 `json:"mileage,omitempty"`
	Category      string `json:"category,omitempty"`
}

type CreateSignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Source    string `json:"source,omitempty"`
}

type VehicleSpecPayload struct {
	Make     string `json:"make"`
	Model    string `json:"model,omitempty"`
	YearFrom int    `json:"yearFrom,omitempty"`
	YearTo   int    `json:"yearTo,omitempty"`
}

type CreateOnboardingRequest struct {
	CustomerName  string               `json:"customerName"`
	CustomerEmail string               `json:"customerEmail,omitempty"`
	CustomerPhone string               `json:"customerPhone,omitempty"`
	Country       string               `json:"country,omitempty"`
	Vehicles      []VehicleSpecPayload `json:"vehicles"`
	Destination   string               `json:"destination,omitempty"`
	PreferCall    bool                 `json:"preferCall,omitempty"`
	PreferredDate string               `json:"preferredDate,omitempty"`
	PreferredTime string               `json:"preferredTime,omitempty"`
	Message       string               `json:"message,omitempty"`
}

type InquiryDetailsPayload struct {
	ItemRef  string `json:"itemRef"`
	Price    *int64 `json:"price,omitempty"`
	Mileage  *int64 `json:"mileage,omitempty"`
	Category string `json:"category"`
}

type SignupDetailsPayload struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Company            string `json:"company,omitempty"`
	City               string `json:"city,omitempty"`
	Source             string `json:"source,omitempty"`
	VerificationStatus string `json:"verificationStatus"`
}

type OnboardingDetailsPayload struct {
	Vehicles      []VehicleSpecPayload `json:"vehicles"`
	Destination   string               `json:"destination,omitempty"`
	PreferCall    bool                 `json:"preferCall"`
	PreferredDate string               `json:"preferredDate,omitempty"`
	PreferredTime string               `json:"preferredTime,omitempty"`
	ScheduledDate string               `json:"scheduledDate,omitempty"`
	ScheduledTime string               `json:"scheduledTime,omitempty"`
}

type AssigneePayload struct {
	StaffID    string `json:"staffId"`
	Name       string `json:"name"`
	AssignedBy string `json:"assignedBy,omitempty"`
	AssignedAt string `json:"assignedAt,omitempty"`
}

// SubmissionResponse carries the stored record plus DisplayStatus, the
// resolver's verdict the console renders in list rows and badges.
type SubmissionResponse struct {
	SubmissionID  string                    `json:"submissionId"`
	Number        string                    `json:"number"`
	Type          string                    `json:"type"`
	CustomerName  string                    `json:"customerName"`
	CustomerEmail string                    `json:"customerEmail,omitempty"`
	CustomerPhone string                    `json:"customerPhone,omitempty"`
	Country       string                    `json:"country,omitempty"`
	Subject       string                    `json:"subject,omitempty"`
	Message       string                    `json:"message,omitempty"`
	Status        string                    `json:"status"`
	DisplayStatus string                    `json:"displayStatus"`
	Assignee      *AssigneePayload          `json:"assignee,omitempty"`
	Inquiry       *InquiryDetailsPayload    `json:"inquiry,omitempty"`
	Signup        *SignupDetailsPayload     `json:"signup,omitempty"`
	Onboarding    *OnboardingDetailsPayload `json:"onboarding,omitempty"`
	CreatedAt     string                    `json:"createdAt"`
	UpdatedAt     string                    `json:"updatedAt,omitempty"`
	RespondedAt   string                    `json:"respondedAt,omitempty"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status"`
}

type AssignSubmissionRequest struct {
	StaffID string `json:"staffId"`
}

type VerifySignupRequest struct {
	Status string `json:"status"`
}

type ScheduleOnboardingRequest struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
}

type SubmissionStatsResponse struct {
	Total             int            `json:"total"`
	ByType            map[string]int `json:"byType"`
	PendingAssignment int            `json:"pendingAssignment"`
	AwaitingResponse  int            `json:"awaitingResponse"`
}
