package inbox

import (
	"fmt"
	"time"

	"crm-console-backend/internal/model"
)

const (
	laterTodayCutoffHour = 14
	laterTodayHour       = 17
	tomorrowHour         = 9
	weekendHour          = 10
	nextWeekHour         = 9
)

// ResolvePreset computes the return time for a named preset relative to now.
// All arithmetic stays in now's location so "tomorrow 09:00" means the
// staff member's tomorrow.
func ResolvePreset(preset model.SnoozePreset, now time.Time) (time.Time, error) {
	switch preset {
	case model.SnoozePresetLaterToday:
		if now.Hour() < laterTodayCutoffHour {
			return dayAt(now, laterTodayHour), nil
		}
		return now.Add(4 * time.Hour), nil
	case model.SnoozePresetTomorrow:
		return dayAt(now.AddDate(0, 0, 1), tomorrowHour), nil
	case model.SnoozePresetWeekend:
		return dayAt(nextWeekday(now, time.Saturday), weekendHour), nil
	case model.SnoozePresetNextWeek:
		return dayAt(nextWeekday(now, time.Monday), nextWeekHour), nil
	case model.SnoozePresetCustom:
		return time.Time{}, fmt.Errorf("custom snooze requires an explicit date and time")
	}
	return time.Time{}, fmt.Errorf("unknown snooze preset %q", preset)
}

// ResolveCustom combines a YYYY-MM-DD date with an HH:MM time of day.
// A return time that is not in the future is rejected with no state change.
func ResolveCustom(date, timeOfDay string, now time.Time) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid snooze date %q", date)
	}

	clock, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid snooze time %q", timeOfDay)
	}

	returnAt := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !returnAt.After(now) {
		return time.Time{}, fmt.Errorf("snooze return time %s is in the past", returnAt.Format(time.RFC3339))
	}
	return returnAt, nil
}

// NewSnoozeConfig builds the stored config for either a preset or a custom
// return time.
func NewSnoozeConfig(params SnoozeParams, now time.Time) (model.SnoozeConfig, error) {
	preset := model.SnoozePreset(params.Preset)

	var returnAt time.Time
	var err error
	if preset == model.SnoozePresetCustom {
		returnAt, err = ResolveCustom(params.Date, params.Time, now)
	} else {
		returnAt, err = ResolvePreset(preset, now)
	}
	if err != nil {
		return model.SnoozeConfig{}, err
	}

	return model.SnoozeConfig{
		Preset:   preset,
		ReturnAt: returnAt.UTC().Format(time.RFC3339),
	}, nil
}

func dayAt(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// nextWeekday advances 1..7 days: landing on the target weekday today still
// means a week out.
func nextWeekday(now time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
