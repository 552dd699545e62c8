package constants

import "strings"

// ProjectStatus is the canonical lifecycle status of an investment project.
type ProjectStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPlanned   ProjectStatus = "Planned"
	StatusActive    ProjectStatus = "Active"
	StatusOnHold    ProjectStatus = "OnHold"
	StatusCompleted ProjectStatus = "Completed"
	StatusCancelled ProjectStatus = "Cancelled"
)

var allStatuses = []ProjectStatus{
	StatusPlanned,
	StatusActive,
	StatusOnHold,
	StatusCompleted,
	StatusCancelled,
}

func StatusStrings() []string {
	result := make([]string, len(allStatuses))
	for i, s := range allStatuses {
		result[i] = string(s)
	}
	return result
}

// CanonicalizeStatus maps a raw status label onto the canonical set.
// The second return is false when the label is unknown; callers keep the
// raw value in that case and flag the record for review.
func CanonicalizeStatus(input string) (ProjectStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]ProjectStatus{
		"proposed":           StatusPlanned,
		"pipeline":           StatusPlanned,
		"planning":           StatusPlanned,
		"in progress":        StatusActive,
		"ongoing":            StatusActive,
		"operational":        StatusActive,
		"under construction": StatusActive,
		"paused":             StatusOnHold,
		"on hold":            StatusOnHold,
		"suspended":          StatusOnHold,
		"done":               StatusCompleted,
		"finished":           StatusCompleted,
		"commissioned":       StatusCompleted,
		"terminated":         StatusCancelled,
		"abandoned":          StatusCancelled,
	}

	if s, ok := synonyms[normalized]; ok {
		return s, true
	}

	for _, s := range allStatuses {
		if normalized == strings.ToLower(string(s)) {
			return s, true
		}
	}

	return "", false
}
