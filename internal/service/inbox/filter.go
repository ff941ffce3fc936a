package inbox

import (
	"strings"
	"time"

	"crm-console-backend/internal/model"
)

// FilterChats applies the tab, search, label and assignment dimensions
// (ANDed) against the collection at the given instant. The input order is
// preserved: ordering is the caller's concern, this engine only selects.
func FilterChats(chats []model.ChatItem, f ChatFilter, now time.Time) []model.ChatItem {
	out := make([]model.ChatItem, 0, len(chats))
	for _, chat := range chats {
		if !matchesTab(chat, f.Tab, now) {
			continue
		}
		if !matchesChatSearch(chat, f.Search) {
			continue
		}
		if !matchesLabels(chat, f.LabelIDs) {
			continue
		}
		if !matchesAssignment(chat, f.Assignment) {
			continue
		}
		out = append(out, chat)
	}
	return out
}

func matchesTab(chat model.ChatItem, tab Tab, now time.Time) bool {
	bucket := Bucket(chat, now)
	switch tab {
	case TabArchived:
		return bucket == model.ChatStatusArchived
	default:
		// The active tab shows snoozed chats too; they carry a badge in
		// the UI rather than disappearing into a separate tab.
		return bucket == model.ChatStatusActive || bucket == model.ChatStatusSnoozed
	}
}

func matchesChatSearch(chat model.ChatItem, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{chat.ContactName, chat.ContactNumber, chat.LastMessage} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// matchesLabels requires at least one of the wanted labels (OR within the
// set); an empty set disables the dimension.
func matchesLabels(chat model.ChatItem, labelIDs []string) bool {
	if len(labelIDs) == 0 {
		return true
	}
	for _, id := range labelIDs {
		if chat.HasLabel(id) {
			return true
		}
	}
	return false
}

func matchesAssignment(chat model.ChatItem, assignment string) bool {
	switch assignment {
	case "":
		return true
	case FilterUnassigned:
		return chat.Assignment == nil
	default:
		return chat.Assignment != nil && chat.Assignment.AssignedTo.StaffID == assignment
	}
}
