package inbox

import (
	"testing"
	"time"

	"crm-console-backend/internal/model"
)

func snoozedChat(returnAt time.Time) model.ChatItem {
	return model.ChatItem{
		ContactID:   "c1",
		ContactName: "Kenji Watanabe",
		Status:      model.ChatStatusSnoozed,
		Snooze: &model.SnoozeConfig{
			Preset:   model.SnoozePresetCustom,
			ReturnAt: returnAt.UTC().Format(time.RFC3339),
		},
	}
}

func TestBucketSnoozeExpiryIsPureFunctionOfNow(t *testing.T) {
	returnAt := time.Date(2025, 2, 10, 17, 0, 0, 0, time.UTC)
	chat := snoozedChat(returnAt)

	// Sweep offsets on both sides of the boundary: before returnAt the chat
	// is snoozed, at and after it reads active with no write having
	// happened.
	for offset := -48 * time.Hour; offset <= 48*time.Hour; offset += 37 * time.Minute {
		now := returnAt.Add(offset)
		got := Bucket(chat, now)
		if now.Before(returnAt) {
			if got != model.ChatStatusSnoozed {
				t.Fatalf("at %s expected snoozed, got %s", now, got)
			}
		} else if got != model.ChatStatusActive {
			t.Fatalf("at %s expected active, got %s", now, got)
		}
	}

	if chat.Status != model.ChatStatusSnoozed || chat.Snooze == nil {
		t.Fatal("bucket must not mutate the chat")
	}
}

func TestBucketArchiveOverridesSnooze(t *testing.T) {
	t0 := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	chat := snoozedChat(t0.Add(time.Hour))
	chat = Archive(chat, t0)

	if chat.Snooze != nil {
		t.Fatal("archive must clear the snooze config")
	}

	// Even a chat with a lingering snooze field stays archived.
	lingering := snoozedChat(t0.Add(time.Hour))
	lingering.Status = model.ChatStatusArchived
	if got := Bucket(lingering, t0.Add(2*time.Hour)); got != model.ChatStatusArchived {
		t.Fatalf("expected archived, got %s", got)
	}
	if got := Bucket(lingering, t0); got != model.ChatStatusArchived {
		t.Fatalf("expected archived during snooze window too, got %s", got)
	}
}

func TestBucketUnparseableSnoozeReadsActive(t *testing.T) {
	chat := model.ChatItem{
		ContactID: "c1",
		Status:    model.ChatStatusSnoozed,
		Snooze:    &model.SnoozeConfig{Preset: model.SnoozePresetCustom, ReturnAt: "not-a-time"},
	}
	if got := Bucket(chat, time.Now()); got != model.ChatStatusActive {
		t.Fatalf("expected active fallback, got %s", got)
	}
}

func TestTransitionsClearAndSetState(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	chat := model.ChatItem{ContactID: "c1", Status: model.ChatStatusActive, Unread: true}

	cfg := model.SnoozeConfig{Preset: model.SnoozePresetTomorrow, ReturnAt: now.Add(21 * time.Hour).Format(time.RFC3339)}
	snoozed := ApplySnooze(chat, cfg, now)
	if snoozed.Status != model.ChatStatusSnoozed || snoozed.Snooze == nil {
		t.Fatalf("unexpected snoozed state: %+v", snoozed)
	}
	if chat.Status != model.ChatStatusActive {
		t.Fatal("transition must not mutate its input")
	}

	cancelled := CancelSnooze(snoozed, now)
	if cancelled.Status != model.ChatStatusActive || cancelled.Snooze != nil {
		t.Fatalf("unexpected cancelled state: %+v", cancelled)
	}

	archived := Archive(snoozed, now)
	if archived.Status != model.ChatStatusArchived || archived.Snooze != nil {
		t.Fatalf("unexpected archived state: %+v", archived)
	}

	restored := Unarchive(archived, now)
	if restored.Status != model.ChatStatusActive || restored.Snooze != nil {
		t.Fatalf("unexpected restored state: %+v", restored)
	}

	read := MarkRead(chat, now)
	if read.Unread {
		t.Fatal("expected unread cleared")
	}
	if read.Status != chat.Status {
		t.Fatal("read toggle must not change the bucket status")
	}
	unread := MarkUnread(read, now)
	if !unread.Unread {
		t.Fatal("expected unread set")
	}
}
