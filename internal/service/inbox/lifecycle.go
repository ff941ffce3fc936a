package inbox

import (
	"time"

	"crm-console-backend/internal/model"
)

// Bucket computes the lifecycle bucket a chat occupies at the given instant.
// Archiving overrides snoozing, and an expired snooze reads as active
// without any write: expiry is a function of now, not a stored flag.
func Bucket(chat model.ChatItem, now time.Time) model.ChatStatus {
	if chat.Status == model.ChatStatusArchived {
		return model.ChatStatusArchived
	}
	if chat.Snooze != nil {
		returnAt, err := time.Parse(time.RFC3339, chat.Snooze.ReturnAt)
		if err == nil && now.Before(returnAt) {
			return model.ChatStatusSnoozed
		}
	}
	return model.ChatStatusActive
}

// The transitions below return new values; callers persist the result.

func Archive(chat model.ChatItem, now time.Time) model.ChatItem {
	chat.Status = model.ChatStatusArchived
	chat.Snooze = nil
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}

func Unarchive(chat model.ChatItem, now time.Time) model.ChatItem {
	chat.Status = model.ChatStatusActive
	chat.Snooze = nil
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}

// ApplySnooze replaces any prior snooze wholesale.
func ApplySnooze(chat model.ChatItem, cfg model.SnoozeConfig, now time.Time) model.ChatItem {
	chat.Status = model.ChatStatusSnoozed
	chat.Snooze = &cfg
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}

func CancelSnooze(chat model.ChatItem, now time.Time) model.ChatItem {
	chat.Status = model.ChatStatusActive
	chat.Snooze = nil
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}

func MarkRead(chat model.ChatItem, now time.Time) model.ChatItem {
	chat.Unread = false
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}

func MarkUnread(chat model.ChatItem, now time.Time) model.ChatItem {
	chat.Unread = true
	chat.UpdatedAt = now.UTC().Format(time.RFC3339)
	return chat
}
