package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crm-console-backend/internal/model"
)

type memoryRepository struct {
	mu          sync.Mutex
	submissions map[string]model.SubmissionItem
	staff       map[string]model.StaffItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		submissions: make(map[string]model.SubmissionItem),
		staff:       make(map[string]model.StaffItem),
	}
}

func (m *memoryRepository) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.submissions[submissionID]
	if !ok {
		return model.SubmissionItem{}, ErrNotFound
	}
	return item, nil
}

func (m *memoryRepository) PutSubmission(ctx context.Context, item model.SubmissionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[item.SubmissionID] = item
	return nil
}

func (m *memoryRepository) ListSubmissions(ctx context.Context) ([]model.SubmissionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SubmissionItem, 0, len(m.submissions))
	for _, item := range m.submissions {
		out = append(out, item)
	}
	return out, nil
}

func (m *memoryRepository) CountByType(ctx context.Context, subType model.SubmissionType) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, item := range m.submissions {
		if item.Type == subType {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepository) GetStaff(ctx context.Context, staffID string) (model.StaffItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	staff, ok := m.staff[staffID]
	if !ok {
		return model.StaffItem{}, ErrNotFound
	}
	return staff, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (*Service, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	repo.staff["s1"] = model.StaffItem{StaffID: "s1", FirstName: "Ana", LastName: "Kim", Role: "agent"}
	repo.staff["s2"] = model.StaffItem{StaffID: "s2", FirstName: "Leo", LastName: "Park", Role: "admin"}
	return NewWithRepository(repo, fixedNow), repo
}

func TestCreateInquiryNumbersSequentially(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateInquiry(ctx, CreateInquiryParams{
		CustomerName: "Kenji Watanabe",
		ItemRef:      "item-1",
		Category:     model.InquiryCategoryPrice,
	})
	if err != nil {
		t.Fatalf("create inquiry: %v", err)
	}
	if first.Number != "INQ-2025-0001" {
		t.Fatalf("expected INQ-2025-0001, got %s", first.Number)
	}
	if first.Status != model.SubmissionStatusNew {
		t.Fatalf("expected status new, got %s", first.Status)
	}

	second, err := svc.CreateInquiry(ctx, CreateInquiryParams{
		CustomerName: "Maria Lopez",
		ItemRef:      "item-2",
	})
	if err != nil {
		t.Fatalf("create second inquiry: %v", err)
	}
	if second.Number != "INQ-2025-0002" {
		t.Fatalf("expected INQ-2025-0002, got %s", second.Number)
	}
	if second.Inquiry.Category != model.InquiryCategoryGeneral {
		t.Fatalf("expected default category general, got %s", second.Inquiry.Category)
	}
}

func TestCreateSignupStartsPending(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.CreateSignup(context.Background(), CreateSignupParams{
		FirstName: "Maria",
		LastName:  "Lopez",
		Email:     "Maria@Example.com",
	})
	if err != nil {
		t.Fatalf("create signup: %v", err)
	}

	if item.Signup.VerificationStatus != model.VerificationStatusPending {
		t.Fatalf("expected pending verification, got %s", item.Signup.VerificationStatus)
	}
	if item.CustomerEmail != "maria@example.com" {
		t.Fatalf("expected normalized email, got %s", item.CustomerEmail)
	}
	if got := model.ResolveDisplayStatus(item); got != model.DisplayStatusPending {
		t.Fatalf("expected display status pending, got %s", got)
	}
}

func TestCreateOnboardingRequiresVehicles(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateOnboarding(context.Background(), CreateOnboardingParams{CustomerName: "Tunde Adeyemi"})
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignInquiryAdvancesNewToInProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateInquiry(ctx, CreateInquiryParams{CustomerName: "Kenji", ItemRef: "item-1"})
	if err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	updated, err := svc.AssignStaff(ctx, item.SubmissionID, "s1", "s2")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if updated.Assignee == nil || updated.Assignee.StaffID != "s1" {
		t.Fatalf("expected assignee s1, got %+v", updated.Assignee)
	}
	if updated.Assignee.Name != "Ana Kim" {
		t.Fatalf("expected display name Ana Kim, got %s", updated.Assignee.Name)
	}
	if updated.Status != model.SubmissionStatusInProgress {
		t.Fatalf("assigning a new inquiry must advance it to in_progress, got %s", updated.Status)
	}
}

func TestAssignDoesNotTouchNonNewInquiryStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, _ := svc.CreateInquiry(ctx, CreateInquiryParams{CustomerName: "Kenji", ItemRef: "item-1"})
	if _, err := svc.UpdateStatus(ctx, item.SubmissionID, model.SubmissionStatusResponded); err != nil {
		t.Fatalf("update status: %v", err)
	}

	updated, err := svc.AssignStaff(ctx, item.SubmissionID, "s1", "s2")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.Status != model.SubmissionStatusResponded {
		t.Fatalf("assignment must not rewind status, got %s", updated.Status)
	}
}

func TestAssignSignupAndOnboardingKeepsStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, _ := svc.CreateSignup(ctx, CreateSignupParams{FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com"})
	onboarding, _ := svc.CreateOnboarding(ctx, CreateOnboardingParams{
		CustomerName: "Tunde Adeyemi",
		Vehicles:     []model.VehicleSpec{{Make: "Toyota", Model: "Hiace"}},
	})

	for _, id := range []string{signup.SubmissionID, onboarding.SubmissionID} {
		updated, err := svc.AssignStaff(ctx, id, "s1", "s2")
		if err != nil {
			t.Fatalf("assign %s: %v", id, err)
		}
		if updated.Status != model.SubmissionStatusNew {
			t.Fatalf("assignment must not change status for %s, got %s", updated.Type, updated.Status)
		}
	}
}

func TestReassignReplacesAssignee(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, _ := svc.CreateInquiry(ctx, CreateInquiryParams{CustomerName: "Kenji", ItemRef: "item-1"})
	if _, err := svc.AssignStaff(ctx, item.SubmissionID, "s1", "s2"); err != nil {
		t.Fatalf("first assign: %v", err)
	}

	updated, err := svc.AssignStaff(ctx, item.SubmissionID, "s2", "s2")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if updated.Assignee.StaffID != "s2" {
		t.Fatalf("expected reassignment to replace, got %s", updated.Assignee.StaffID)
	}

	cleared, err := svc.UnassignStaff(ctx, item.SubmissionID)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if cleared.Assignee != nil {
		t.Fatal("expected assignee cleared")
	}
}

func TestAssignUnknownStaffFails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, _ := svc.CreateInquiry(ctx, CreateInquiryParams{CustomerName: "Kenji", ItemRef: "item-1"})

	_, err := svc.AssignStaff(ctx, item.SubmissionID, "missing", "s2")
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestVerifySignupLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, _ := svc.CreateSignup(ctx, CreateSignupParams{FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com"})

	verified, err := svc.VerifySignup(ctx, item.SubmissionID, model.VerificationStatusVerified)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got := model.ResolveDisplayStatus(verified); got != model.DisplayStatusVerified {
		t.Fatalf("expected verified, got %s", got)
	}

	// Already resolved: a second verdict must be rejected.
	_, err = svc.VerifySignup(ctx, item.SubmissionID, model.VerificationStatusRejected)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != ErrorCodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestScheduleOnboarding(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, _ := svc.CreateOnboarding(ctx, CreateOnboardingParams{
		CustomerName: "Tunde Adeyemi",
		Vehicles:     []model.VehicleSpec{{Make: "Toyota", Model: "Hiace"}},
	})

	scheduled, err := svc.ScheduleOnboarding(ctx, item.SubmissionID, "2025-03-01", "10:30")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := model.ResolveDisplayStatus(scheduled); got != model.DisplayStatusScheduled {
		t.Fatalf("expected scheduled, got %s", got)
	}

	closed, err := svc.UpdateStatus(ctx, item.SubmissionID, model.SubmissionStatusClosed)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := model.ResolveDisplayStatus(closed); got != model.DisplayStatusCompleted {
		t.Fatalf("closed onboarding must read completed even when scheduled, got %s", got)
	}

	if _, err := svc.ScheduleOnboarding(ctx, item.SubmissionID, "2025-03-08", ""); err == nil {
		t.Fatal("expected scheduling a closed request to fail")
	}
}

func TestUpdateStatusGuards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	signup, _ := svc.CreateSignup(ctx, CreateSignupParams{FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com"})
	if _, err := svc.UpdateStatus(ctx, signup.SubmissionID, model.SubmissionStatusClosed); err == nil {
		t.Fatal("expected signup status update to be rejected")
	}

	inq, _ := svc.CreateInquiry(ctx, CreateInquiryParams{CustomerName: "Kenji", ItemRef: "item-1"})
	responded, err := svc.MarkResponded(ctx, inq.SubmissionID)
	if err != nil {
		t.Fatalf("mark responded: %v", err)
	}
	if responded.RespondedAt == "" {
		t.Fatal("expected responded timestamp to be set")
	}
}
