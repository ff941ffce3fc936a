package inbox

import (
	"testing"
	"time"

	"crm-console-backend/internal/model"
)

var filterNow = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

func fixtureChats() []model.ChatItem {
	return []model.ChatItem{
		{
			ContactID:     "c-active",
			ContactName:   "Mira Novak",
			ContactNumber: "+48 600 100 200",
			LastMessage:   "Is the invoice ready?",
			LastMessageAt: "2025-02-10T11:30:00Z",
			Status:        model.ChatStatusActive,
			LabelIDs:      []string{"l-billing"},
			Assignment: &model.ChatAssignment{
				AssignedTo: model.StaffRef{StaffID: "s1", Name: "Ana Kim"},
				AssignedAt: "2025-02-09T10:00:00Z",
			},
		},
		{
			ContactID:     "c-snoozed",
			ContactName:   "Tomas Lind",
			ContactNumber: "+46 70 111 22 33",
			LastMessage:   "Call me back next week",
			LastMessageAt: "2025-02-10T09:00:00Z",
			Status:        model.ChatStatusSnoozed,
			Snooze: &model.SnoozeConfig{
				Preset:   model.SnoozePresetNextWeek,
				ReturnAt: "2025-02-17T09:00:00Z",
			},
		},
		{
			ContactID:     "c-expired",
			ContactName:   "Priya Sharma",
			ContactNumber: "+91 98 7654 3210",
			LastMessage:   "Following up on my inquiry",
			LastMessageAt: "2025-02-09T18:00:00Z",
			Status:        model.ChatStatusSnoozed,
			Snooze: &model.SnoozeConfig{
				Preset:   model.SnoozePresetTomorrow,
				ReturnAt: "2025-02-10T09:00:00Z",
			},
		},
		{
			ContactID:     "c-archived",
			ContactName:   "Mira Archived",
			ContactNumber: "+48 600 999 999",
			LastMessage:   "Thanks, all sorted",
			LastMessageAt: "2025-02-08T15:00:00Z",
			Status:        model.ChatStatusArchived,
			LabelIDs:      []string{"l-billing", "l-vip"},
		},
	}
}

func chatIDs(chats []model.ChatItem) []string {
	ids := make([]string, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ContactID)
	}
	return ids
}

func TestFilterChatsTabs(t *testing.T) {
	chats := fixtureChats()

	// Active tab carries snoozed chats, including one whose snooze ran out.
	got := FilterChats(chats, ChatFilter{Tab: TabActive}, filterNow)
	want := []string{"c-active", "c-snoozed", "c-expired"}
	assertIDs(t, chatIDs(got), want)

	got = FilterChats(chats, ChatFilter{Tab: TabArchived}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-archived"})

	// An empty tab behaves like the active tab.
	got = FilterChats(chats, ChatFilter{}, filterNow)
	assertIDs(t, chatIDs(got), want)
}

func TestFilterChatsPreservesInputOrder(t *testing.T) {
	chats := fixtureChats()
	// Reverse the input; the output must follow suit.
	reversed := make([]model.ChatItem, 0, len(chats))
	for i := len(chats) - 1; i >= 0; i-- {
		reversed = append(reversed, chats[i])
	}

	got := FilterChats(reversed, ChatFilter{Tab: TabActive}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-expired", "c-snoozed", "c-active"})
}

func TestFilterChatsSearch(t *testing.T) {
	chats := fixtureChats()

	cases := []struct {
		term string
		want []string
	}{
		{"mira", []string{"c-active"}},
		{"  TOMAS ", []string{"c-snoozed"}},
		{"600 100", []string{"c-active"}},
		{"inquiry", []string{"c-expired"}},
		{"nobody-matches", nil},
	}
	for _, tc := range cases {
		got := FilterChats(chats, ChatFilter{Tab: TabActive, Search: tc.term}, filterNow)
		assertIDs(t, chatIDs(got), tc.want)
	}
}

func TestFilterChatsLabels(t *testing.T) {
	chats := fixtureChats()

	got := FilterChats(chats, ChatFilter{Tab: TabActive, LabelIDs: []string{"l-billing"}}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-active"})

	// OR within the set: either label qualifies.
	got = FilterChats(chats, ChatFilter{Tab: TabArchived, LabelIDs: []string{"l-vip", "l-missing"}}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-archived"})

	// Empty set disables the dimension.
	got = FilterChats(chats, ChatFilter{Tab: TabActive, LabelIDs: nil}, filterNow)
	if len(got) != 3 {
		t.Fatalf("expected 3 chats with label filter off, got %d", len(got))
	}
}

func TestFilterChatsAssignment(t *testing.T) {
	chats := fixtureChats()

	got := FilterChats(chats, ChatFilter{Tab: TabActive, Assignment: "s1"}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-active"})

	got = FilterChats(chats, ChatFilter{Tab: TabActive, Assignment: FilterUnassigned}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-snoozed", "c-expired"})

	got = FilterChats(chats, ChatFilter{Tab: TabActive, Assignment: "s-nobody"}, filterNow)
	assertIDs(t, chatIDs(got), nil)
}

func TestFilterChatsDimensionsAreANDed(t *testing.T) {
	chats := fixtureChats()

	got := FilterChats(chats, ChatFilter{
		Tab:        TabActive,
		Search:     "mira",
		LabelIDs:   []string{"l-billing"},
		Assignment: "s1",
	}, filterNow)
	assertIDs(t, chatIDs(got), []string{"c-active"})

	// Same criteria but the archived-only label owner fails the tab check.
	got = FilterChats(chats, ChatFilter{
		Tab:      TabActive,
		LabelIDs: []string{"l-vip"},
	}, filterNow)
	assertIDs(t, chatIDs(got), nil)
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
