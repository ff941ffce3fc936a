package main

import (
	"context"
	"crm-console-backend/internal/database"
	internaljwt "crm-console-backend/internal/jwt"
	"crm-console-backend/internal/model"
	"log"
	"time"

	"github.com/google/uuid"
)

// Seeds the store with demo staff, labels, submissions and chats. Intended
// for local development against DynamoDB Local.
func main() {
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()

	staff := seedStaff(now)
	labels := seedLabels(now)
	submissions := seedSubmissions(now, staff)
	chats := seedChats(now, staff, labels)

	if err := db.Client.BatchPutItems(ctx, model.StaffTable, asAny(staff)); err != nil {
		log.Fatalf("seed staff: %v", err)
	}
	if err := db.Client.BatchPutItems(ctx, model.LabelsTable, asAny(labels)); err != nil {
		log.Fatalf("seed labels: %v", err)
	}
	if err := db.Client.BatchPutItems(ctx, model.SubmissionsTable, asAny(submissions)); err != nil {
		log.Fatalf("seed submissions: %v", err)
	}
	if err := db.Client.BatchPutItems(ctx, model.ChatsTable, asAny(chats)); err != nil {
		log.Fatalf("seed chats: %v", err)
	}

	log.Printf("seeded %d staff, %d labels, %d submissions, %d chats",
		len(staff), len(labels), len(submissions), len(chats))
}

func seedStaff(now time.Time) []model.StaffItem {
	members := []struct {
		first, last, email, role string
	}{
		{"Ana", "Kim", "ana.kim@example.com", "admin"},
		{"Leo", "Park", "leo.park@example.com", "agent"},
		{"Mia", "Santos", "mia.santos@example.com", "agent"},
	}

	out := make([]model.StaffItem, 0, len(members))
	for _, m := range members {
		jwtStaff, err := internaljwt.NewStaff(internaljwt.RegisterStaff{
			Email:    m.email,
			Password: "changeme123",
		})
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		out = append(out, model.StaffItem{
			StaffID:      uuid.NewString(),
			Email:        m.email,
			FirstName:    m.first,
			LastName:     m.last,
			Role:         m.role,
			PasswordHash: jwtStaff.PasswordHash,
			CreatedAt:    now.Format(time.RFC3339),
		})
	}
	return out
}

func seedLabels(now time.Time) []model.LabelItem {
	names := []struct {
		name  string
		color model.LabelColor
	}{
		{"VIP", model.LabelColorAmber},
		{"Billing", model.LabelColorBlue},
		{"Follow up", model.LabelColorGreen},
	}

	out := make([]model.LabelItem, 0, len(names))
	for _, l := range names {
		out = append(out, model.LabelItem{
			LabelID:   uuid.NewString(),
			Name:      l.name,
			Color:     l.color,
			CreatedAt: now.Format(time.RFC3339),
		})
	}
	return out
}

func seedSubmissions(now time.Time, staff []model.StaffItem) []model.SubmissionItem {
	year := now.Year()
	price := int64(18500)
	mileage := int64(92000)

	inquiry := model.SubmissionItem{
		SubmissionID:  uuid.NewString(),
		Number:        model.SubmissionNumber("INQ", year, 1),
		Type:          model.SubmissionTypeInquiry,
		CustomerName:  "Kenji Watanabe",
		CustomerEmail: "kenji@example.com",
		Country:       "JP",
		Subject:       "Price question",
		Message:       "Is the listed price negotiable?",
		Status:        model.SubmissionStatusNew,
		Inquiry: &model.InquiryDetails{
			ItemRef:  "stock-4711",
			Price:    &price,
			Mileage:  &mileage,
			Category: model.InquiryCategoryPrice,
		},
		CreatedAt: now.Add(-3 * time.Hour).Format(time.RFC3339),
	}

	signup := model.SubmissionItem{
		SubmissionID:  uuid.NewString(),
		Number:        model.SubmissionNumber("REG", year, 1),
		Type:          model.SubmissionTypeSignup,
		CustomerName:  "Mira Novak",
		CustomerEmail: "mira@example.com",
		Country:       "PL",
		Subject:       "Account signup",
		Status:        model.SubmissionStatusNew,
		Signup: &model.SignupDetails{
			FirstName:          "Mira",
			LastName:           "Novak",
			Company:            "Novak Trading",
			City:               "Warsaw",
			VerificationStatus: model.VerificationStatusPending,
		},
		CreatedAt: now.Add(-2 * time.Hour).Format(time.RFC3339),
	}

	onboarding := model.SubmissionItem{
		SubmissionID:  uuid.NewString(),
		Number:        model.SubmissionNumber("OBD", year, 1),
		Type:          model.SubmissionTypeOnboarding,
		CustomerName:  "Tomas Lind",
		CustomerPhone: "+46 70 111 22 33",
		Country:       "SE",
		Subject:       "Onboarding consultation",
		Status:        model.SubmissionStatusNew,
		Assignee: &model.AssigneeRef{
			StaffID:    staff[0].StaffID,
			Name:       staff[0].DisplayName(),
			AssignedAt: now.Add(-time.Hour).Format(time.RFC3339),
		},
		Onboarding: &model.OnboardingDetails{
			Vehicles: []model.VehicleSpec{
				{Make: "Volvo", Model: "XC60", YearFrom: 2019},
			},
			Destination: "Stockholm",
			PreferCall:  true,
		},
		CreatedAt: now.Add(-time.Hour).Format(time.RFC3339),
	}

	return []model.SubmissionItem{inquiry, signup, onboarding}
}

func seedChats(now time.Time, staff []model.StaffItem, labels []model.LabelItem) []model.ChatItem {
	active := model.ChatItem{
		ContactID:     uuid.NewString(),
		ContactName:   "Kenji Watanabe",
		ContactNumber: "+81 90 1234 5678",
		LastMessage:   "Thanks, waiting for the invoice",
		LastMessageAt: now.Add(-30 * time.Minute).Format(time.RFC3339),
		Unread:        true,
		Status:        model.ChatStatusActive,
		LabelIDs:      []string{labels[0].LabelID},
		Assignment: &model.ChatAssignment{
			AssignedTo: model.StaffRef{StaffID: staff[1].StaffID, Name: staff[1].DisplayName()},
			AssignedBy: model.StaffRef{StaffID: staff[0].StaffID, Name: staff[0].DisplayName()},
			AssignedAt: now.Add(-time.Hour).Format(time.RFC3339),
		},
		CreatedAt: now.Add(-48 * time.Hour).Format(time.RFC3339),
	}

	snoozed := model.ChatItem{
		ContactID:     uuid.NewString(),
		ContactName:   "Mira Novak",
		ContactNumber: "+48 600 100 200",
		LastMessage:   "Call me back next week",
		LastMessageAt: now.Add(-5 * time.Hour).Format(time.RFC3339),
		Status:        model.ChatStatusSnoozed,
		Snooze: &model.SnoozeConfig{
			Preset:   model.SnoozePresetNextWeek,
			ReturnAt: now.AddDate(0, 0, 7).Format(time.RFC3339),
		},
		CreatedAt: now.Add(-72 * time.Hour).Format(time.RFC3339),
	}

	archived := model.ChatItem{
		ContactID:     uuid.NewString(),
		ContactName:   "Priya Sharma",
		ContactNumber: "+91 98 7654 3210",
		LastMessage:   "All sorted, thank you!",
		LastMessageAt: now.Add(-96 * time.Hour).Format(time.RFC3339),
		Status:        model.ChatStatusArchived,
		LabelIDs:      []string{labels[2].LabelID},
		CreatedAt:     now.Add(-200 * time.Hour).Format(time.RFC3339),
	}

	return []model.ChatItem{active, snoozed, archived}
}

func asAny[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
