package service

import (
	"regexp"
	"strings"
	"time"

	"hrfx-gateway/internal/domain"
	"hrfx-gateway/pkg/dates"
)

var nonLetter = regexp.MustCompile(`[^a-z]`)

// ResolveStatus derives the canonical lifecycle status from the free-text
// upstream field. Unrecognized or empty text is treated as Inactive, never as
// Active. A probation end date strictly in the future flips an Active result
// to Probation. The caller supplies now so the result is deterministic.
func ResolveStatus(raw string, probationEnd *string, now time.Time) domain.Status {
	clean := nonLetter.ReplaceAllString(strings.ToLower(raw), "")

	var status domain.Status
	switch clean {
	case "active":
		status = domain.StatusActive
	case "inactive":
		status = domain.StatusInactive
	case "probation":
		status = domain.StatusProbation
	default:
		status = domain.StatusInactive
	}

	if status == domain.StatusActive && probationEnd != nil {
		if end, err := dates.ParseDay(*probationEnd); err == nil && end.After(now) {
			status = domain.StatusProbation
		}
	}
	return status
}
