package models

import (
	"fmt"
	"strings"
)

// Period identifies an academic term. Funds and transactions are scoped to one.
type Period struct {
	Semester   string `json:"semester"`
	SchoolYear string `json:"school_year"`
}

// NewPeriod builds a Period with surrounding whitespace removed.
func NewPeriod(semester, schoolYear string) Period {
	return Period{
		Semester:   strings.TrimSpace(semester),
		SchoolYear: strings.TrimSpace(schoolYear),
	}
}

// IsComplete reports whether both the semester and school year are set.
func (p Period) IsComplete() bool {
	return p.Semester != "" && p.SchoolYear != ""
}

// String renders the period as "First Semester, S.Y. 2025-2026".
func (p Period) String() string {
	return fmt.Sprintf("%s, %s", p.Semester, p.SchoolYear)
}
