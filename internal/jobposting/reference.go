// Package jobposting ingests a job posting from pasted text or a URL and
// analyzes it into the write-once reference a session tailors against.
package jobposting

import (
	"fmt"
	"time"
)

// Reference is the analyzed summary of one job posting. A session stores at
// most one and never mutates it; repeat analyses are rejected upstream.
type Reference struct {
	Company    string    `json:"company"`
	Title      string    `json:"title"`
	Location   string    `json:"location,omitempty"`
	Seniority  string    `json:"seniority,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Source     string    `json:"source"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Label returns the "title at company" form used in guard messages and
// review screens.
func (r *Reference) Label() string {
	switch {
	case r.Title != "" && r.Company != "":
		return fmt.Sprintf("%s at %s", r.Title, r.Company)
	case r.Title != "":
		return r.Title
	default:
		return r.Company
	}
}
