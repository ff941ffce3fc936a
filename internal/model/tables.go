package model

import "fmt"

const (
	SubmissionsTable = "Submissions"
	ChatsTable       = "Chats"
	StaffTable       = "Staff"
	LabelsTable      = "Labels"
)

type StaffItem struct {
	StaffID      string `dynamodbav:"staffId"`
	Email        string `dynamodbav:"email"`
	FirstName    string `dynamodbav:"firstName"`
	LastName     string `dynamodbav:"lastName"`
	Role         string `dynamodbav:"role"`
	Online       bool   `dynamodbav:"online"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

func (s StaffItem) DisplayName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

type LabelColor string

const (
	LabelColorGray   LabelColor = "gray"
	LabelColorRed    LabelColor = "red"
	LabelColorOrange LabelColor = "orange"
	LabelColorAmber  LabelColor = "amber"
	LabelColorGreen  LabelColor = "green"
	LabelColorBlue   LabelColor = "blue"
	LabelColorViolet LabelColor = "violet"
	LabelColorPink   LabelColor = "pink"
)

func ValidLabelColor(c LabelColor) bool {
	switch c {
	case LabelColorGray, LabelColorRed, LabelColorOrange, LabelColorAmber,
		LabelColorGreen, LabelColorBlue, LabelColorViolet, LabelColorPink:
		return true
	}
	return false
}

type LabelItem struct {
	LabelID   string     `dynamodbav:"labelId"`
	Name      string     `dynamodbav:"name"`
	Color     LabelColor `dynamodbav:"color"`
	CreatedAt string     `dynamodbav:"createdAt"`
}

func SubmissionNumber(prefix string, year int, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
