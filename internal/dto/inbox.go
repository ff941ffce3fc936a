package dto

type SnoozePayload struct {
	Preset   string `json:"preset"`
	ReturnAt string `json:"returnAt"`
}

type StaffRefPayload struct {
	StaffID string `json:"staffId"`
	Name    string `json:"name"`
}

type ChatAssignmentPayload struct {
	AssignedTo StaffRefPayload `json:"assignedTo"`
	AssignedBy StaffRefPayload `json:"assignedBy"`
	AssignedAt string          `json:"assignedAt"`
}

// ChatResponse includes Bucket, the lifecycle state the chat occupies right
// now, which can differ from the stored status once a snooze has lapsed.
type ChatResponse struct {
	ContactID     string                 `json:"contactId"`
	ContactName   string                 `json:"contactName"`
	ContactNumber string                 `json:"contactNumber"`
	AvatarURL     string                 `json:"avatarUrl,omitempty"`
	LastMessage   string                 `json:"lastMessage,omitempty"`
	LastMessageAt string                 `json:"lastMessageAt,omitempty"`
	Unread        bool                   `json:"unread"`
	Bucket        string                 `json:"bucket"`
	Snooze        *SnoozePayload         `json:"snooze,omitempty"`
	Assignment    *ChatAssignmentPayload `json:"assignment,omitempty"`
	LabelIDs      []string               `json:"labelIds"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt,omitempty"`
}

type ListChatsResponse struct {
	Chats []ChatResponse `json:"chats"`
}

type SnoozeChatRequest struct {
	Preset string `json:"preset"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
}

type AssignChatRequest struct {
	StaffID string `json:"staffId"`
}

type SetChatLabelsRequest struct {
	LabelIDs []string `json:"labelIds"`
}

type CreateLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type LabelResponse struct {
	LabelID   string `json:"labelId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
}

type ListLabelsResponse struct {
	Labels []LabelResponse `json:"labels"`
}
