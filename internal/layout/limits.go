// Package layout estimates the rendered page count of a resume and checks it
// against a configurable limit table. Validation is pure: the same document
// and limits always produce the same result, with no I/O and no model calls.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SectionLimit bounds a free-text section by character count.
type SectionLimit struct {
	MaxChars int `yaml:"max_chars"`
}

// WorkLimits bounds the work and further-experience sections.
type WorkLimits struct {
	MaxEntries         int `yaml:"max_entries"`
	MaxBulletsPerEntry int `yaml:"max_bullets_per_entry"`
	MaxBulletChars     int `yaml:"max_bullet_chars"`
}

// EducationLimits bounds the education section.
type EducationLimits struct {
	MaxEntries int `yaml:"max_entries"`
}

// ListLimits bounds a flat item list (skills, languages, interests).
type ListLimits struct {
	MaxItems     int `yaml:"max_items"`
	MaxItemChars int `yaml:"max_item_chars"`
}

// Limits is the single source of numeric truth for layout validation.
// The compiled-in defaults suit the bundled two-page themes; deployments
// tune them through a YAML file rather than a rebuild. The defaults are
// sized so that a document within every limit always fits MaxPages.
type Limits struct {
	MaxPages  float64         `yaml:"max_pages"`
	Profile   SectionLimit    `yaml:"profile"`
	Work      WorkLimits      `yaml:"work"`
	Further   WorkLimits      `yaml:"further"`
	Education EducationLimits `yaml:"education"`
	Skills    ListLimits      `yaml:"skills"`
	Languages ListLimits      `yaml:"languages"`
	Interests ListLimits      `yaml:"interests"`
}

// DefaultLimits returns the built-in limit table.
func DefaultLimits() Limits {
	return Limits{
		MaxPages: 2.0,
		Profile:  SectionLimit{MaxChars: 500},
		Work: WorkLimits{
			MaxEntries:         5,
			MaxBulletsPerEntry: 4,
			MaxBulletChars:     90,
		},
		Further: WorkLimits{
			MaxEntries:         2,
			MaxBulletsPerEntry: 4,
			MaxBulletChars:     90,
		},
		Education: EducationLimits{MaxEntries: 3},
		Skills: ListLimits{
			MaxItems:     8,
			MaxItemChars: 70,
		},
		Languages: ListLimits{
			MaxItems:     6,
			MaxItemChars: 40,
		},
		Interests: ListLimits{
			MaxItems:     6,
			MaxItemChars: 40,
		},
	}
}

// LoadLimits reads a YAML override file on top of the defaults. Keys absent
// from the file keep their default values; an empty path returns the
// defaults unchanged.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return limits, fmt.Errorf("failed to read limits file: %w", err)
	}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return limits, fmt.Errorf("failed to parse limits file: %w", err)
	}
	if limits.MaxPages <= 0 {
		return limits, fmt.Errorf("invalid limits file: max_pages must be positive, got %v", limits.MaxPages)
	}
	return limits, nil
}
