package submission

import (
	"sort"
	"strings"

	"crm-console-backend/internal/model"
)

// FilterSubmissions applies every criteria dimension (ANDed) and returns the
// matches ordered newest first. The input slice is never mutated; ties keep
// their original relative order.
func FilterSubmissions(items []model.SubmissionItem, f Filter) []model.SubmissionItem {
	out := make([]model.SubmissionItem, 0, len(items))
	for _, item := range items {
		if !matchesType(item, f.Type) {
			continue
		}
		if !matchesSearch(item, f.Search) {
			continue
		}
		if !matchesStatus(item, f.Status) {
			continue
		}
		if !matchesAssignee(item, f.Assignee) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func matchesType(item model.SubmissionItem, typeFilter string) bool {
	if typeFilter == "" || typeFilter == FilterAll {
		return true
	}
	return string(item.Type) == typeFilter
}

func matchesSearch(item model.SubmissionItem, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{item.Number, item.CustomerName, item.CustomerEmail, item.Subject} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesStatus(item model.SubmissionItem, statusFilter string) bool {
	if statusFilter == "" || statusFilter == FilterAll {
		return true
	}
	// A record whose payload contradicts its type tag matches no specific
	// status; it only surfaces under "all".
	if !item.WellFormed() {
		return false
	}
	return string(model.ResolveDisplayStatus(item)) == statusFilter
}

func matchesAssignee(item model.SubmissionItem, assigneeFilter string) bool {
	switch assigneeFilter {
	case "", FilterAll:
		return true
	case FilterUnassigned:
		return item.Assignee == nil
	default:
		return item.Assignee != nil && item.Assignee.StaffID == assigneeFilter
	}
}

// CountStats derives the triage counters from a submission collection.
func CountStats(items []model.SubmissionItem) Stats {
	stats := Stats{
		ByType: make(map[model.SubmissionType]int),
	}
	for _, item := range items {
		stats.Total++
		stats.ByType[item.Type]++

		status := model.ResolveDisplayStatus(item)
		if item.Assignee == nil && !model.TerminalDisplayStatus(status) {
			stats.PendingAssignment++
		}
		switch status {
		case model.DisplayStatusNew, model.DisplayStatusPending, model.DisplayStatusInProgress:
			stats.AwaitingResponse++
		}
	}
	return stats
}
