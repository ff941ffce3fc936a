package model

type ChatStatus string

const (
	ChatStatusActive   ChatStatus = "active"
	ChatStatusSnoozed  ChatStatus = "snoozed"
	ChatStatusArchived ChatStatus = "archived"
)

type SnoozePreset string

const (
	SnoozePresetLaterToday SnoozePreset = "later_today"
	SnoozePresetTomorrow   SnoozePreset = "tomorrow"
	SnoozePresetWeekend    SnoozePreset = "weekend"
	SnoozePresetNextWeek   SnoozePreset = "next_week"
	SnoozePresetCustom     SnoozePreset = "custom"
)

// SnoozeConfig records when a snoozed chat returns to the inbox. ReturnAt is
// RFC3339; expiry is evaluated against it at read time, never flipped by a
// background job.
type SnoozeConfig struct {
	Preset   SnoozePreset `dynamodbav:"preset"`
	ReturnAt string       `dynamodbav:"returnAt"`
}

type StaffRef struct {
	StaffID string `dynamodbav:"staffId"`
	Name    string `dynamodbav:"name"`
}

// ChatAssignment binds a single owner to a chat. Reassignment replaces the
// whole value.
type ChatAssignment struct {
	AssignedTo StaffRef `dynamodbav:"assignedTo"`
	AssignedBy StaffRef `dynamodbav:"assignedBy"`
	AssignedAt string   `dynamodbav:"assignedAt"`
}

type ChatItem struct {
	ContactID     string          `dynamodbav:"contactId"`
	ContactName   string          `dynamodbav:"contactName"`
	ContactNumber string          `dynamodbav:"contactNumber"`
	AvatarURL     string          `dynamodbav:"avatarUrl,omitempty"`
	LastMessage   string          `dynamodbav:"lastMessage,omitempty"`
	LastMessageAt string          `dynamodbav:"lastMessageAt,omitempty"`
	Unread        bool            `dynamodbav:"unread"`
	Status        ChatStatus      `dynamodbav:"status"`
	Snooze        *SnoozeConfig   `dynamodbav:"snooze,omitempty"`
	Assignment    *ChatAssignment `dynamodbav:"assignment,omitempty"`
	LabelIDs      []string        `dynamodbav:"labelIds,omitempty"`
	CreatedAt     string          `dynamodbav:"createdAt"`
	UpdatedAt     string          `dynamodbav:"updatedAt,omitempty"`
}

func (c ChatItem) HasLabel(labelID string) bool {
	for _, id := range c.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}
