package model

import "testing"

func TestResolveDisplayStatusInquiry(t *testing.T) {
	sub := SubmissionItem{
		SubmissionID: "sub-1",
		Type:         SubmissionTypeInquiry,
		Status:       SubmissionStatusNew,
		Inquiry:      &InquiryDetails{ItemRef: "item-1", Category: InquiryCategoryPrice},
	}

	if got := ResolveDisplayStatus(sub); got != DisplayStatusNew {
		t.Fatalf("expected new, got %s", got)
	}

	sub.Status = SubmissionStatusResponded
	if got := ResolveDisplayStatus(sub); got != DisplayStatusResponded {
		t.Fatalf("expected responded, got %s", got)
	}
}

func TestResolveDisplayStatusSignupIgnoresGenericStatus(t *testing.T) {
	sub := SubmissionItem{
		SubmissionID: "sub-2",
		Type:         SubmissionTypeSignup,
		Status:       SubmissionStatusNew,
		Signup:       &SignupDetails{FirstName: "Ana", LastName: "Kim", VerificationStatus: VerificationStatusPending},
	}

	if got := ResolveDisplayStatus(sub); got != DisplayStatusPending {
		t.Fatalf("expected pending, got %s", got)
	}

	sub.Signup.VerificationStatus = VerificationStatusVerified
	if got := ResolveDisplayStatus(sub); got != DisplayStatusVerified {
		t.Fatalf("expected verified, got %s", got)
	}
}

func TestResolveDisplayStatusOnboardingDerived(t *testing.T) {
	cases := []struct {
		name      string
		status    SubmissionStatus
		scheduled string
		want      DisplayStatus
	}{
		{"fresh", SubmissionStatusNew, "", DisplayStatusNew},
		{"scheduled", SubmissionStatusNew, "2025-03-01", DisplayStatusScheduled},
		{"closed beats scheduled", SubmissionStatusClosed, "2025-03-01", DisplayStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := SubmissionItem{
				SubmissionID: "sub-3",
				Type:         SubmissionTypeOnboarding,
				Status:       tc.status,
				Onboarding: &OnboardingDetails{
					Vehicles:      []VehicleSpec{{Make: "Toyota", Model: "Land Cruiser"}},
					ScheduledDate: tc.scheduled,
				},
			}
			if got := ResolveDisplayStatus(sub); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolveDisplayStatusTotalOnMalformedRecords(t *testing.T) {
	// Missing payloads and unknown types must still resolve to something.
	cases := []SubmissionItem{
		{SubmissionID: "m1", Type: SubmissionTypeSignup, Status: SubmissionStatusNew},
		{SubmissionID: "m2", Type: SubmissionTypeOnboarding, Status: SubmissionStatusInProgress},
		{SubmissionID: "m3", Type: "mystery", Status: SubmissionStatusClosed},
		{SubmissionID: "m4"},
	}

	for _, sub := range cases {
		got := ResolveDisplayStatus(sub)
		if sub.Type == SubmissionTypeOnboarding {
			if got != DisplayStatusNew {
				t.Fatalf("onboarding without payload: expected new, got %s", got)
			}
			continue
		}
		if string(got) != string(sub.Status) {
			t.Fatalf("expected fallback to generic status %q, got %q", sub.Status, got)
		}
	}
}

func TestSubmissionWellFormed(t *testing.T) {
	inquiry := SubmissionItem{
		SubmissionID: "sub-4",
		Type:         SubmissionTypeInquiry,
		Inquiry:      &InquiryDetails{ItemRef: "item-9"},
	}
	if !inquiry.WellFormed() {
		t.Fatal("expected inquiry to be well formed")
	}

	inquiry.Signup = &SignupDetails{}
	if inquiry.WellFormed() {
		t.Fatal("two payloads must not be well formed")
	}

	mismatch := SubmissionItem{
		SubmissionID: "sub-5",
		Type:         SubmissionTypeSignup,
		Onboarding:   &OnboardingDetails{},
	}
	if mismatch.WellFormed() {
		t.Fatal("payload mismatching the type must not be well formed")
	}
	if err := mismatch.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestTerminalDisplayStatus(t *testing.T) {
	terminal := []DisplayStatus{DisplayStatusClosed, DisplayStatusRejected, DisplayStatusCancelled, DisplayStatusCompleted}
	for _, s := range terminal {
		if !TerminalDisplayStatus(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	open := []DisplayStatus{DisplayStatusNew, DisplayStatusPending, DisplayStatusInProgress, DisplayStatusResponded, DisplayStatusScheduled, DisplayStatusVerified}
	for _, s := range open {
		if TerminalDisplayStatus(s) {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}
