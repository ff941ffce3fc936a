package inbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crm-console-backend/internal/model"
)

type memoryRepository struct {
	mu     sync.Mutex
	chats  map[string]model.ChatItem
	staff  map[string]model.StaffItem
	labels map[string]model.LabelItem
	order  []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		chats:  make(map[string]model.ChatItem),
		staff:  make(map[string]model.StaffItem),
		labels: make(map[string]model.LabelItem),
	}
}

func (m *memoryRepository) GetChat(_ context.Context, contactID string) (model.ChatItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[contactID]
	if !ok {
		return model.ChatItem{}, ErrNotFound
	}
	return chat, nil
}

func (m *memoryRepository) PutChat(_ context.Context, chat model.ChatItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chat.ContactID]; !ok {
		m.order = append(m.order, chat.ContactID)
	}
	m.chats[chat.ContactID] = chat
	return nil
}

func (m *memoryRepository) ListChats(_ context.Context) ([]model.ChatItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ChatItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.chats[id])
	}
	return out, nil
}

func (m *memoryRepository) GetStaff(_ context.Context, staffID string) (model.StaffItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	staff, ok := m.staff[staffID]
	if !ok {
		return model.StaffItem{}, ErrNotFound
	}
	return staff, nil
}

func (m *memoryRepository) GetLabel(_ context.Context, labelID string) (model.LabelItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	label, ok := m.labels[labelID]
	if !ok {
		return model.LabelItem{}, ErrNotFound
	}
	return label, nil
}

func (m *memoryRepository) PutLabel(_ context.Context, label model.LabelItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels[label.LabelID] = label
	return nil
}

func (m *memoryRepository) ListLabels(_ context.Context) ([]model.LabelItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LabelItem, 0, len(m.labels))
	for _, label := range m.labels {
		out = append(out, label)
	}
	return out, nil
}

var serviceNow = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	repo.staff["s1"] = model.StaffItem{StaffID: "s1", FirstName: "Ana", LastName: "Kim"}
	repo.staff["s2"] = model.StaffItem{StaffID: "s2", FirstName: "Leo", LastName: "Park"}
	repo.chats["c1"] = model.ChatItem{
		ContactID:     "c1",
		ContactName:   "Mira Novak",
		LastMessageAt: "2025-02-10T11:30:00Z",
		Status:        model.ChatStatusActive,
		Unread:        true,
	}
	repo.order = append(repo.order, "c1")
	return NewWithRepository(repo, func() time.Time { return serviceNow }), repo
}

func assertCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, svcErr.Code, svcErr.Message)
	}
}

func TestSnoozeChatPresetThenCancel(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	chat, err := svc.SnoozeChat(ctx, "c1", SnoozeParams{Preset: "tomorrow"})
	if err != nil {
		t.Fatal(err)
	}
	if chat.Status != model.ChatStatusSnoozed || chat.Snooze == nil {
		t.Fatalf("unexpected chat state: %+v", chat)
	}
	if chat.Snooze.ReturnAt != "2025-02-11T09:00:00Z" {
		t.Fatalf("unexpected return time %s", chat.Snooze.ReturnAt)
	}
	if stored := repo.chats["c1"]; stored.Snooze == nil {
		t.Fatal("snooze not persisted")
	}

	chat, err = svc.CancelChatSnooze(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Status != model.ChatStatusActive || chat.Snooze != nil {
		t.Fatalf("unexpected chat state after cancel: %+v", chat)
	}
}

func TestSnoozeChatReplacesExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SnoozeChat(ctx, "c1", SnoozeParams{Preset: "tomorrow"}); err != nil {
		t.Fatal(err)
	}
	chat, err := svc.SnoozeChat(ctx, "c1", SnoozeParams{Preset: "next_week"})
	if err != nil {
		t.Fatal(err)
	}
	if chat.Snooze.Preset != model.SnoozePresetNextWeek {
		t.Fatalf("expected next_week, got %s", chat.Snooze.Preset)
	}
	if chat.Snooze.ReturnAt != "2025-02-17T09:00:00Z" {
		t.Fatalf("unexpected return time %s", chat.Snooze.ReturnAt)
	}
}

func TestSnoozeChatRejectsPastCustomWithoutWrite(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.SnoozeChat(context.Background(), "c1", SnoozeParams{
		Preset: "custom",
		Date:   "2025-02-01",
		Time:   "09:00",
	})
	assertCode(t, err, ErrorCodeValidation)

	if repo.chats["c1"].Snooze != nil {
		t.Fatal("rejected snooze must not be persisted")
	}
}

func TestSnoozeChatArchivedConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ArchiveChat(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.SnoozeChat(ctx, "c1", SnoozeParams{Preset: "tomorrow"})
	assertCode(t, err, ErrorCodeConflict)
}

func TestArchiveClearsSnoozeAndUnarchiveRestores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SnoozeChat(ctx, "c1", SnoozeParams{Preset: "weekend"}); err != nil {
		t.Fatal(err)
	}
	chat, err := svc.ArchiveChat(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Status != model.ChatStatusArchived || chat.Snooze != nil {
		t.Fatalf("unexpected archived state: %+v", chat)
	}

	chat, err = svc.UnarchiveChat(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Status != model.ChatStatusActive || chat.Snooze != nil {
		t.Fatalf("unexpected unarchived state: %+v", chat)
	}
}

func TestAssignChatReplacesOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	chat, err := svc.AssignChat(ctx, "c1", "s1", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Assignment == nil {
		t.Fatal("expected assignment")
	}
	if chat.Assignment.AssignedTo.Name != "Ana Kim" {
		t.Fatalf("unexpected assignee name %q", chat.Assignment.AssignedTo.Name)
	}
	if chat.Assignment.AssignedBy.Name != "Leo Park" {
		t.Fatalf("unexpected assigner name %q", chat.Assignment.AssignedBy.Name)
	}

	chat, err = svc.AssignChat(ctx, "c1", "s2", "s2")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Assignment.AssignedTo.StaffID != "s2" {
		t.Fatalf("expected s2, got %s", chat.Assignment.AssignedTo.StaffID)
	}

	chat, err = svc.UnassignChat(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Assignment != nil {
		t.Fatal("expected assignment cleared")
	}
}

func TestAssignChatUnknownStaff(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AssignChat(context.Background(), "c1", "s-ghost", "s1")
	assertCode(t, err, ErrorCodeNotFound)
}

func TestSetChatLabelsValidatesAndDedupes(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	billing, err := svc.CreateLabel(ctx, "Billing", model.LabelColorBlue)
	if err != nil {
		t.Fatal(err)
	}

	chat, err := svc.SetChatLabels(ctx, "c1", []string{billing.LabelID, " ", billing.LabelID})
	if err != nil {
		t.Fatal(err)
	}
	if len(chat.LabelIDs) != 1 || chat.LabelIDs[0] != billing.LabelID {
		t.Fatalf("unexpected labels %v", chat.LabelIDs)
	}

	_, err = svc.SetChatLabels(ctx, "c1", []string{"l-ghost"})
	assertCode(t, err, ErrorCodeValidation)
	if got := repo.chats["c1"].LabelIDs; len(got) != 1 {
		t.Fatalf("failed update must not change stored labels, got %v", got)
	}
}

func TestCreateLabelValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateLabel(ctx, "  ", model.LabelColorRed)
	assertCode(t, err, ErrorCodeValidation)

	_, err = svc.CreateLabel(ctx, "VIP", model.LabelColor("chartreuse"))
	assertCode(t, err, ErrorCodeValidation)
}

func TestMarkReadUnread(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	chat, err := svc.MarkChatRead(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Unread {
		t.Fatal("expected unread cleared")
	}

	chat, err = svc.MarkChatUnread(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !chat.Unread {
		t.Fatal("expected unread set")
	}
}

func TestListChatsAppliesFilterAtNow(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.PutChat(ctx, model.ChatItem{
		ContactID:     "c2",
		ContactName:   "Tomas Lind",
		LastMessageAt: "2025-02-10T10:00:00Z",
		Status:        model.ChatStatusArchived,
	})

	chats, err := svc.ListChats(ctx, ChatFilter{Tab: TabActive})
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, chatIDs(chats), []string{"c1"})

	chats, err = svc.ListChats(ctx, ChatFilter{Tab: TabArchived})
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, chatIDs(chats), []string{"c2"})
}

func TestGetChatNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetChat(context.Background(), "c-missing")
	assertCode(t, err, ErrorCodeNotFound)
}
