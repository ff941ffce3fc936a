package submission

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm-console-backend/internal/database"
	"crm-console-backend/internal/model"

	"github.com/google/uuid"
)

var numberPrefixes = map[model.SubmissionType]string{
	model.SubmissionTypeInquiry:    "INQ",
	model.SubmissionTypeSignup:     "REG",
	model.SubmissionTypeOnboarding: "OBD",
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) CreateInquiry(ctx context.Context, params CreateInquiryParams) (model.SubmissionItem, error) {
	name := strings.TrimSpace(params.CustomerName)
	if name == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "customer name is required", nil)
	}
	if strings.TrimSpace(params.ItemRef) == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "item reference is required", nil)
	}

	category := params.Category
	if category == "" {
		category = model.InquiryCategoryGeneral
	}

	item := s.newSubmission(model.SubmissionTypeInquiry)
	item.CustomerName = name
	item.CustomerEmail = normalizeEmail(params.CustomerEmail)
	item.CustomerPhone = strings.TrimSpace(params.CustomerPhone)
	item.Country = strings.TrimSpace(params.Country)
	item.Subject = strings.TrimSpace(params.Subject)
	item.Message = strings.TrimSpace(params.Message)
	item.Inquiry = &model.InquiryDetails{
		ItemRef:  strings.TrimSpace(params.ItemRef),
		Price:    params.Price,
		Mileage:  params.Mileage,
		Category: category,
	}

	return s.persistNew(ctx, item)
}

func (s *Service) CreateSignup(ctx context.Context, params CreateSignupParams) (model.SubmissionItem, error) {
	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	email := normalizeEmail(params.Email)

	if first == "" || last == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "first and last name are required", nil)
	}
	if email == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "email is required", nil)
	}

	item := s.newSubmission(model.SubmissionTypeSignup)
	item.CustomerName = strings.TrimSpace(first + " " + last)
	item.CustomerEmail = email
	item.CustomerPhone = strings.TrimSpace(params.Phone)
	item.Country = strings.TrimSpace(params.Country)
	item.Subject = "Account signup"
	item.Signup = &model.SignupDetails{
		FirstName:          first,
		LastName:           last,
		Company:            strings.TrimSpace(params.Company),
		City:               strings.TrimSpace(params.City),
		Source:             strings.TrimSpace(params.Source),
		VerificationStatus: model.VerificationStatusPending,
	}

	return s.persistNew(ctx, item)
}

func (s *Service) CreateOnboarding(ctx context.Context, params CreateOnboardingParams) (model.SubmissionItem, error) {
	name := strings.TrimSpace(params.CustomerName)
	if name == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "customer name is required", nil)
	}
	if len(params.Vehicles) == 0 {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "at least one vehicle is required", nil)
	}
	for _, v := range params.Vehicles {
		if strings.TrimSpace(v.Make) == "" {
			return model.SubmissionItem{}, newError(ErrorCodeValidation, "vehicle make is required", nil)
		}
	}

	item := s.newSubmission(model.SubmissionTypeOnboarding)
	item.CustomerName = name
	item.CustomerEmail = normalizeEmail(params.CustomerEmail)
	item.CustomerPhone = strings.TrimSpace(params.CustomerPhone)
	item.Country = strings.TrimSpace(params.Country)
	item.Subject = "Onboarding consultation"
	item.Message = strings.TrimSpace(params.Message)
	item.Onboarding = &model.OnboardingDetails{
		Vehicles:      params.Vehicles,
		Destination:   strings.TrimSpace(params.Destination),
		PreferCall:    params.PreferCall,
		PreferredDate: strings.TrimSpace(params.PreferredDate),
		PreferredTime: strings.TrimSpace(params.PreferredTime),
	}

	return s.persistNew(ctx, item)
}

func (s *Service) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionItem, error) {
	item, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.SubmissionItem{}, newError(ErrorCodeNotFound, "submission not found", err)
		}
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to load submission", err)
	}
	return item, nil
}

// ListSubmissions loads every record and applies the caller's filter
// criteria in memory; the collection is console-scale.
func (s *Service) ListSubmissions(ctx context.Context, filter Filter) ([]model.SubmissionItem, error) {
	items, err := s.repo.ListSubmissions(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list submissions", err)
	}
	return FilterSubmissions(items, filter), nil
}

func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	items, err := s.repo.ListSubmissions(ctx)
	if err != nil {
		return Stats{}, newError(ErrorCodeInternal, "failed to list submissions", err)
	}
	return CountStats(items), nil
}

// UpdateStatus sets the generic status of an inquiry or closes an
// onboarding request. Signups are verified, not status-driven.
func (s *Service) UpdateStatus(ctx context.Context, submissionID string, status model.SubmissionStatus) (model.SubmissionItem, error) {
	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}

	switch item.Type {
	case model.SubmissionTypeInquiry:
		switch status {
		case model.SubmissionStatusNew, model.SubmissionStatusInProgress,
			model.SubmissionStatusResponded, model.SubmissionStatusClosed:
		default:
			return model.SubmissionItem{}, newError(ErrorCodeValidation, "invalid inquiry status", nil)
		}
	case model.SubmissionTypeOnboarding:
		if status != model.SubmissionStatusClosed {
			return model.SubmissionItem{}, newError(ErrorCodeValidation, "onboarding requests can only be closed", nil)
		}
	default:
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "signup status is governed by verification", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	item.Status = status
	item.UpdatedAt = now
	if status == model.SubmissionStatusResponded && item.RespondedAt == "" {
		item.RespondedAt = now
	}

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to update submission", err)
	}
	return item, nil
}

// MarkResponded stamps the reply-sent time on an inquiry and moves it to
// responded.
func (s *Service) MarkResponded(ctx context.Context, submissionID string) (model.SubmissionItem, error) {
	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}
	if item.Type != model.SubmissionTypeInquiry {
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "only inquiries track responses", nil)
	}
	return s.UpdateStatus(ctx, submissionID, model.SubmissionStatusResponded)
}

func (s *Service) AssignStaff(ctx context.Context, submissionID, staffID, assignedByID string) (model.SubmissionItem, error) {
	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}

	staff, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.SubmissionItem{}, newError(ErrorCodeNotFound, "staff member not found", err)
		}
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to load staff member", err)
	}

	item = Assign(item, staff.StaffID, staff.DisplayName(), assignedByID, s.now())

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to save assignment", err)
	}
	return item, nil
}

func (s *Service) UnassignStaff(ctx context.Context, submissionID string) (model.SubmissionItem, error) {
	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}

	item = Unassign(item, s.now())

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to clear assignment", err)
	}
	return item, nil
}

// VerifySignup resolves a pending signup to verified or rejected. The
// verification status carries the lifecycle; the generic field stays new.
func (s *Service) VerifySignup(ctx context.Context, submissionID string, status model.VerificationStatus) (model.SubmissionItem, error) {
	if status != model.VerificationStatusVerified && status != model.VerificationStatusRejected {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "verification must be verified or rejected", nil)
	}

	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}
	if item.Type != model.SubmissionTypeSignup || item.Signup == nil {
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "submission is not a signup", nil)
	}
	if item.Signup.VerificationStatus != model.VerificationStatusPending {
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "signup is already resolved", nil)
	}

	item.Signup.VerificationStatus = status
	item.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to save verification", err)
	}
	return item, nil
}

// ScheduleOnboarding sets the consultation date/time. The resolver then
// reports the record as scheduled until it is closed.
func (s *Service) ScheduleOnboarding(ctx context.Context, submissionID, date, timeOfDay string) (model.SubmissionItem, error) {
	if strings.TrimSpace(date) == "" {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "scheduled date is required", nil)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeValidation, "scheduled date must be YYYY-MM-DD", err)
	}

	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return model.SubmissionItem{}, err
	}
	if item.Type != model.SubmissionTypeOnboarding || item.Onboarding == nil {
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "submission is not an onboarding request", nil)
	}
	if item.Status == model.SubmissionStatusClosed {
		return model.SubmissionItem{}, newError(ErrorCodeConflict, "onboarding request is closed", nil)
	}

	item.Onboarding.ScheduledDate = date
	item.Onboarding.ScheduledTime = strings.TrimSpace(timeOfDay)
	item.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to save schedule", err)
	}
	return item, nil
}

func (s *Service) newSubmission(subType model.SubmissionType) model.SubmissionItem {
	now := s.now().UTC()
	return model.SubmissionItem{
		SubmissionID: uuid.NewString(),
		Type:         subType,
		Status:       model.SubmissionStatusNew,
		CreatedAt:    now.Format(time.RFC3339),
	}
}

func (s *Service) persistNew(ctx context.Context, item model.SubmissionItem) (model.SubmissionItem, error) {
	count, err := s.repo.CountByType(ctx, item.Type)
	if err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to number submission", err)
	}
	item.Number = model.SubmissionNumber(numberPrefixes[item.Type], s.now().UTC().Year(), count+1)

	if err := item.Validate(); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "submission is malformed", err)
	}

	if err := s.repo.PutSubmission(ctx, item); err != nil {
		return model.SubmissionItem{}, newError(ErrorCodeInternal, "failed to store submission", err)
	}
	return item, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	return strings.ToLower(email)
}
