package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// maxedOutDocument fills every section to exactly its default limit.
func maxedOutDocument(limits Limits) cvdata.Document {
	bullet := strings.Repeat("x", limits.Work.MaxBulletChars)
	entry := func(n int) []cvdata.WorkEntry {
		entries := make([]cvdata.WorkEntry, n)
		for i := range entries {
			entries[i] = cvdata.WorkEntry{Company: "Co", Role: "Role"}
			for b := 0; b < limits.Work.MaxBulletsPerEntry; b++ {
				entries[i].Bullets = append(entries[i].Bullets, bullet)
			}
		}
		return entries
	}
	list := func(l ListLimits) []string {
		items := make([]string, l.MaxItems)
		for i := range items {
			items[i] = strings.Repeat("y", l.MaxItemChars)
		}
		return items
	}

	doc := cvdata.Document{
		Contact:     cvdata.Contact{Name: "Max Muster", Email: "max@example.com"},
		Profile:     strings.Repeat("p", limits.Profile.MaxChars),
		Work:        entry(limits.Work.MaxEntries),
		Further:     entry(limits.Further.MaxEntries),
		Skills:      list(limits.Skills),
		Languages:   list(limits.Languages),
		Interests:   list(limits.Interests),
		ConsentText: "Ich stimme der Verarbeitung meiner Daten zu.",
	}
	for i := 0; i < limits.Education.MaxEntries; i++ {
		doc.Education = append(doc.Education, cvdata.EducationEntry{Institution: "Uni", Degree: "BSc"})
	}
	return doc
}

func TestValidateWithinLimitsIsSound(t *testing.T) {
	limits := DefaultLimits()
	result := Validate(maxedOutDocument(limits), limits)

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.LessOrEqual(t, result.EstimatedPages, limits.MaxPages)
	assert.Greater(t, result.EstimatedPages, 0.0)
}

func TestValidateEmptyDocument(t *testing.T) {
	result := Validate(cvdata.Document{}, DefaultLimits())
	assert.True(t, result.IsValid)
	assert.Greater(t, result.EstimatedPages, 0.0)
}

func TestValidateNamesFieldOneOverLimit(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name   string
		mutate func(doc *cvdata.Document)
		field  string
	}{
		{
			name: "one work entry too many",
			mutate: func(doc *cvdata.Document) {
				doc.Work = append(doc.Work, cvdata.WorkEntry{Company: "One Too Many"})
			},
			field: "work",
		},
		{
			name: "one bullet too many",
			mutate: func(doc *cvdata.Document) {
				doc.Work[2].Bullets = append(doc.Work[2].Bullets, "extra")
			},
			field: "work[2].bullets",
		},
		{
			name: "bullet one character over",
			mutate: func(doc *cvdata.Document) {
				doc.Work[0].Bullets[1] = strings.Repeat("x", limits.Work.MaxBulletChars+1)
			},
			field: "work[0].bullets[1]",
		},
		{
			name: "profile one character over",
			mutate: func(doc *cvdata.Document) {
				doc.Profile = strings.Repeat("p", limits.Profile.MaxChars+1)
			},
			field: "profile",
		},
		{
			name: "one education entry too many",
			mutate: func(doc *cvdata.Document) {
				doc.Education = append(doc.Education, cvdata.EducationEntry{Institution: "Extra"})
			},
			field: "education",
		},
		{
			name: "one skill too many",
			mutate: func(doc *cvdata.Document) {
				doc.Skills = append(doc.Skills, "extra")
			},
			field: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := maxedOutDocument(limits)
			tt.mutate(&doc)

			result := Validate(doc, limits)
			require.False(t, result.IsValid)

			fields := make([]string, 0, len(result.Errors))
			for _, issue := range result.Errors {
				fields = append(fields, issue.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Greater(t, result.EstimatedPages, 0.0, "estimate computed even when invalid")
		})
	}
}

func TestValidateRemedyReportsMinimalFix(t *testing.T) {
	limits := DefaultLimits()
	doc := maxedOutDocument(limits)
	doc.Work[1].Bullets = append(doc.Work[1].Bullets, "extra")

	result := Validate(doc, limits)
	require.False(t, result.IsValid)

	var found *FieldIssue
	for i := range result.Errors {
		if result.Errors[i].Field == "work[1].bullets" {
			found = &result.Errors[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, limits.Work.MaxBulletsPerEntry+1, found.Measured)
	assert.Equal(t, limits.Work.MaxBulletsPerEntry, found.Limit)
	assert.Equal(t, "remove 1 bullet", found.Remedy)
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	limits := DefaultLimits()
	doc := cvdata.Document{
		// 70 umlauts are 140 bytes but exactly at the 70-rune limit.
		Skills: []string{strings.Repeat("ü", limits.Skills.MaxItemChars)},
	}

	result := Validate(doc, limits)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestValidateWarnsNearCharacterLimit(t *testing.T) {
	limits := DefaultLimits()
	doc := cvdata.Document{
		Profile: strings.Repeat("p", limits.Profile.MaxChars-10),
	}

	result := Validate(doc, limits)
	assert.True(t, result.IsValid)

	var warned bool
	for _, w := range result.Warnings {
		if w.Field == "profile" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestValidateDeterministic(t *testing.T) {
	limits := DefaultLimits()
	doc := maxedOutDocument(limits)
	doc.Skills = append(doc.Skills, "extra")

	first := Validate(doc, limits)
	second := Validate(doc, limits)
	assert.Equal(t, first, second)
}
