package layout

import (
	"fmt"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// FieldIssue names one field that breaks or approaches a limit. Measured
// and Limit are in the unit of the offended limit (characters or items);
// Remedy states the minimal fix in user terms.
type FieldIssue struct {
	Field    string `json:"field"`
	Measured int    `json:"measured"`
	Limit    int    `json:"limit"`
	Remedy   string `json:"remedy"`
}

// Result is the outcome of one validation pass. IsValid is true iff Errors
// is empty; warnings never block generation. EstimatedPages is always
// computed, valid or not, so callers can show how close the draft is.
type Result struct {
	IsValid        bool         `json:"is_valid"`
	Errors         []FieldIssue `json:"errors,omitempty"`
	Warnings       []FieldIssue `json:"warnings,omitempty"`
	EstimatedPages float64      `json:"estimated_pages"`
}

// warnRatio is the fraction of a character limit at which a field starts
// drawing a warning.
const warnRatio = 0.9

// Validate checks a document against the limit table. Every field over a
// hard limit produces exactly one error naming it; a document within all
// limits comes back clean.
func Validate(doc cvdata.Document, limits Limits) Result {
	v := &validator{limits: limits}

	v.checkText("profile", doc.Profile, limits.Profile.MaxChars)
	v.checkExperience("work", doc.Work, limits.Work)
	v.checkExperience("further", doc.Further, limits.Further)
	v.checkCount("education", len(doc.Education), limits.Education.MaxEntries, "entry", "entries")
	v.checkList("skills", doc.Skills, limits.Skills)
	v.checkList("languages", doc.Languages, limits.Languages)
	v.checkList("interests", doc.Interests, limits.Interests)

	result := Result{
		IsValid:        len(v.errors) == 0,
		Errors:         v.errors,
		Warnings:       v.warnings,
		EstimatedPages: EstimatePages(doc),
	}

	// The page budget itself is soft: with the default table a document
	// within every hard limit always fits, so an overflow here means the
	// table was tuned loosely and the user should still be told.
	if result.EstimatedPages > limits.MaxPages {
		result.Warnings = append(result.Warnings, FieldIssue{
			Field:    "document",
			Measured: int(result.EstimatedPages * 10),
			Limit:    int(limits.MaxPages * 10),
			Remedy:   fmt.Sprintf("estimated %.1f pages exceeds the %.1f-page budget; shorten the longest sections", result.EstimatedPages, limits.MaxPages),
		})
	} else if limits.MaxPages-result.EstimatedPages < 0.2 {
		result.Warnings = append(result.Warnings, FieldIssue{
			Field:    "document",
			Measured: int(result.EstimatedPages * 10),
			Limit:    int(limits.MaxPages * 10),
			Remedy:   fmt.Sprintf("estimated %.1f pages is close to the %.1f-page budget", result.EstimatedPages, limits.MaxPages),
		})
	}

	return result
}

type validator struct {
	limits   Limits
	errors   []FieldIssue
	warnings []FieldIssue
}

func (v *validator) checkText(field, text string, maxChars int) {
	measured := len([]rune(text))
	if measured > maxChars {
		v.errors = append(v.errors, FieldIssue{
			Field:    field,
			Measured: measured,
			Limit:    maxChars,
			Remedy:   fmt.Sprintf("shorten by %d characters", measured-maxChars),
		})
		return
	}
	if float64(measured) >= warnRatio*float64(maxChars) {
		v.warnings = append(v.warnings, FieldIssue{
			Field:    field,
			Measured: measured,
			Limit:    maxChars,
			Remedy:   fmt.Sprintf("%d characters left before the limit", maxChars-measured),
		})
	}
}

func (v *validator) checkCount(field string, measured, limit int, singular, plural string) {
	if measured <= limit {
		return
	}
	v.errors = append(v.errors, FieldIssue{
		Field:    field,
		Measured: measured,
		Limit:    limit,
		Remedy:   fmt.Sprintf("remove %s", countNoun(measured-limit, singular, plural)),
	})
}

func (v *validator) checkExperience(field string, entries []cvdata.WorkEntry, limits WorkLimits) {
	v.checkCount(field, len(entries), limits.MaxEntries, "entry", "entries")
	for i, entry := range entries {
		if len(entry.Bullets) > limits.MaxBulletsPerEntry {
			v.errors = append(v.errors, FieldIssue{
				Field:    fmt.Sprintf("%s[%d].bullets", field, i),
				Measured: len(entry.Bullets),
				Limit:    limits.MaxBulletsPerEntry,
				Remedy:   fmt.Sprintf("remove %s", countNoun(len(entry.Bullets)-limits.MaxBulletsPerEntry, "bullet", "bullets")),
			})
		}
		for j, bullet := range entry.Bullets {
			measured := len([]rune(bullet))
			if measured > limits.MaxBulletChars {
				v.errors = append(v.errors, FieldIssue{
					Field:    fmt.Sprintf("%s[%d].bullets[%d]", field, i, j),
					Measured: measured,
					Limit:    limits.MaxBulletChars,
					Remedy:   fmt.Sprintf("shorten by %d characters", measured-limits.MaxBulletChars),
				})
			}
		}
	}
}

func (v *validator) checkList(field string, items []string, limits ListLimits) {
	v.checkCount(field, len(items), limits.MaxItems, "item", "items")
	for i, item := range items {
		measured := len([]rune(item))
		if measured > limits.MaxItemChars {
			v.errors = append(v.errors, FieldIssue{
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Measured: measured,
				Limit:    limits.MaxItemChars,
				Remedy:   fmt.Sprintf("shorten by %d characters", measured-limits.MaxItemChars),
			})
		}
	}
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
