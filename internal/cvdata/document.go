// Package cvdata defines the canonical resume data model shared by the
// wizard engine, the layout validator and the PDF renderer.
package cvdata

import "strings"

// Contact holds the personal details block of a resume.
type Contact struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	Address string   `json:"address,omitempty"`
	Links   []string `json:"links,omitempty"`
}

// IsComplete reports whether the contact block carries the minimum the
// wizard requires before it can be confirmed.
func (c Contact) IsComplete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Email) != ""
}

// WorkEntry is a single position in the work or further-experience sections.
type WorkEntry struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Location string   `json:"location,omitempty"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// EducationEntry is a single degree or training record.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Document is the canonical resume data a wizard session accumulates.
// Sections start empty and fill in as the user confirms each stage.
// Skills holds the IT/AI skill items; Languages the spoken languages.
// Language is the language the content is written in ("de" or "en"); the
// renderer picks its section headings from it.
type Document struct {
	Contact      Contact          `json:"contact"`
	Language     string           `json:"language,omitempty"`
	Profile      string           `json:"profile,omitempty"`
	Work         []WorkEntry      `json:"work,omitempty"`
	Further      []WorkEntry      `json:"further,omitempty"`
	Education    []EducationEntry `json:"education,omitempty"`
	Skills       []string         `json:"skills,omitempty"`
	Languages    []string         `json:"languages,omitempty"`
	Interests    []string         `json:"interests,omitempty"`
	ConsentText  string           `json:"consent_text,omitempty"`
	PhotoDataURI string           `json:"photo_data_uri,omitempty"`
	ThemeID      string           `json:"theme_id,omitempty"`
}

// Clone returns a deep copy. Proposals are built against a clone so a
// rejected proposal never leaks partial edits into the original.
func (d Document) Clone() Document {
	out := d
	out.Work = cloneWork(d.Work)
	out.Further = cloneWork(d.Further)
	out.Education = append([]EducationEntry(nil), d.Education...)
	out.Skills = append([]string(nil), d.Skills...)
	out.Languages = append([]string(nil), d.Languages...)
	out.Interests = append([]string(nil), d.Interests...)
	out.Contact.Links = append([]string(nil), d.Contact.Links...)
	return out
}

func cloneWork(entries []WorkEntry) []WorkEntry {
	if entries == nil {
		return nil
	}
	out := make([]WorkEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Bullets = append([]string(nil), e.Bullets...)
	}
	return out
}
