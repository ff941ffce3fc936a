package inbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm-console-backend/internal/database"
	"crm-console-backend/internal/model"

	"github.com/google/uuid"
)

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

// ListChats loads the inbox (most recent message first, as the repository
// orders it) and applies the caller's filter at the current instant.
func (s *Service) ListChats(ctx context.Context, filter ChatFilter) ([]model.ChatItem, error) {
	chats, err := s.repo.ListChats(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list chats", err)
	}
	return FilterChats(chats, filter, s.now()), nil
}

func (s *Service) GetChat(ctx context.Context, contactID string) (model.ChatItem, error) {
	chat, err := s.repo.GetChat(ctx, contactID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ChatItem{}, newError(ErrorCodeNotFound, "chat not found", err)
		}
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to load chat", err)
	}
	return chat, nil
}

func (s *Service) ArchiveChat(ctx context.Context, contactID string) (model.ChatItem, error) {
	return s.transition(ctx, contactID, Archive)
}

func (s *Service) UnarchiveChat(ctx context.Context, contactID string) (model.ChatItem, error) {
	return s.transition(ctx, contactID, Unarchive)
}

func (s *Service) CancelChatSnooze(ctx context.Context, contactID string) (model.ChatItem, error) {
	return s.transition(ctx, contactID, CancelSnooze)
}

func (s *Service) MarkChatRead(ctx context.Context, contactID string) (model.ChatItem, error) {
	return s.transition(ctx, contactID, MarkRead)
}

func (s *Service) MarkChatUnread(ctx context.Context, contactID string) (model.ChatItem, error) {
	return s.transition(ctx, contactID, MarkUnread)
}

// SnoozeChat computes the return time from the preset or the custom
// date/time and stores the new snooze, replacing any prior one. A custom
// time in the past rejects the whole operation.
func (s *Service) SnoozeChat(ctx context.Context, contactID string, params SnoozeParams) (model.ChatItem, error) {
	cfg, err := NewSnoozeConfig(params, s.now())
	if err != nil {
		return model.ChatItem{}, newError(ErrorCodeValidation, err.Error(), err)
	}

	chat, err := s.GetChat(ctx, contactID)
	if err != nil {
		return model.ChatItem{}, err
	}
	if chat.Status == model.ChatStatusArchived {
		return model.ChatItem{}, newError(ErrorCodeConflict, "archived chats cannot be snoozed", nil)
	}

	chat = ApplySnooze(chat, cfg, s.now())

	if err := s.repo.PutChat(ctx, chat); err != nil {
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to save snooze", err)
	}
	return chat, nil
}

// AssignChat binds a single owner, replacing any prior assignment.
func (s *Service) AssignChat(ctx context.Context, contactID, staffID, assignedByID string) (model.ChatItem, error) {
	chat, err := s.GetChat(ctx, contactID)
	if err != nil {
		return model.ChatItem{}, err
	}

	staff, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ChatItem{}, newError(ErrorCodeNotFound, "staff member not found", err)
		}
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to load staff member", err)
	}

	assignedBy := model.StaffRef{StaffID: assignedByID}
	if assignedByID != "" {
		if byStaff, err := s.repo.GetStaff(ctx, assignedByID); err == nil {
			assignedBy.Name = byStaff.DisplayName()
		}
	}

	now := s.now().UTC().Format(time.RFC3339)
	chat.Assignment = &model.ChatAssignment{
		AssignedTo: model.StaffRef{StaffID: staff.StaffID, Name: staff.DisplayName()},
		AssignedBy: assignedBy,
		AssignedAt: now,
	}
	chat.UpdatedAt = now

	if err := s.repo.PutChat(ctx, chat); err != nil {
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to save assignment", err)
	}
	return chat, nil
}

func (s *Service) UnassignChat(ctx context.Context, contactID string) (model.ChatItem, error) {
	chat, err := s.GetChat(ctx, contactID)
	if err != nil {
		return model.ChatItem{}, err
	}

	chat.Assignment = nil
	chat.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutChat(ctx, chat); err != nil {
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to clear assignment", err)
	}
	return chat, nil
}

// SetChatLabels replaces the chat's label set. Every id must refer to an
// existing label.
func (s *Service) SetChatLabels(ctx context.Context, contactID string, labelIDs []string) (model.ChatItem, error) {
	chat, err := s.GetChat(ctx, contactID)
	if err != nil {
		return model.ChatItem{}, err
	}

	seen := make(map[string]bool, len(labelIDs))
	cleaned := make([]string, 0, len(labelIDs))
	for _, id := range labelIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if _, err := s.repo.GetLabel(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return model.ChatItem{}, newError(ErrorCodeValidation, "unknown label: "+id, err)
			}
			return model.ChatItem{}, newError(ErrorCodeInternal, "failed to load label", err)
		}
		seen[id] = true
		cleaned = append(cleaned, id)
	}

	chat.LabelIDs = cleaned
	chat.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutChat(ctx, chat); err != nil {
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to save labels", err)
	}
	return chat, nil
}

func (s *Service) CreateLabel(ctx context.Context, name string, color model.LabelColor) (model.LabelItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.LabelItem{}, newError(ErrorCodeValidation, "label name is required", nil)
	}
	if !model.ValidLabelColor(color) {
		return model.LabelItem{}, newError(ErrorCodeValidation, "unknown label color", nil)
	}

	label := model.LabelItem{
		LabelID:   uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.PutLabel(ctx, label); err != nil {
		return model.LabelItem{}, newError(ErrorCodeInternal, "failed to store label", err)
	}
	return label, nil
}

func (s *Service) ListLabels(ctx context.Context) ([]model.LabelItem, error) {
	labels, err := s.repo.ListLabels(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list labels", err)
	}
	return labels, nil
}

func (s *Service) transition(ctx context.Context, contactID string, apply func(model.ChatItem, time.Time) model.ChatItem) (model.ChatItem, error) {
	chat, err := s.GetChat(ctx, contactID)
	if err != nil {
		return model.ChatItem{}, err
	}

	chat = apply(chat, s.now())

	if err := s.repo.PutChat(ctx, chat); err != nil {
		return model.ChatItem{}, newError(ErrorCodeInternal, "failed to save chat", err)
	}
	return chat, nil
}
