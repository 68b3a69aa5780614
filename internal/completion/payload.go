package completion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// Validatable is implemented by every typed payload. Validate runs the
// checks the loose envelope schema cannot express.
type Validatable interface {
	Validate() error
}

// DecodePayload unmarshals an envelope payload into dst and runs its
// validation. The envelope itself is schema-checked before this point; a
// failure here still counts as invalid model output to the caller.
func DecodePayload(env *Envelope, dst Validatable) error {
	if env == nil || len(env.Payload) == 0 || string(env.Payload) == "null" {
		return fmt.Errorf("payload missing")
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return dst.Validate()
}

// JobAnalysisPayload is the payload of an analyze-job-posting call.
type JobAnalysisPayload struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Seniority string   `json:"seniority"`
	Skills    []string `json:"skills"`
	Summary   string   `json:"summary"`
}

func (p *JobAnalysisPayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Company) == "" {
		return fmt.Errorf("job analysis carries neither title nor company")
	}
	return nil
}

// PrefillPayload is the payload of an extract-prefill call. Its fields
// mirror the canonical document so extraction survives the round trip into
// canonical data unchanged.
type PrefillPayload struct {
	Contact   cvdata.Contact          `json:"contact"`
	Profile   string                  `json:"profile"`
	Work      []cvdata.WorkEntry      `json:"work"`
	Further   []cvdata.WorkEntry      `json:"further"`
	Education []cvdata.EducationEntry `json:"education"`
	Skills    []string                `json:"skills"`
	Languages []string                `json:"languages"`
	Interests []string                `json:"interests"`
}

func (p *PrefillPayload) Validate() error {
	if p.Contact.Name == "" && len(p.Work) == 0 && len(p.Education) == 0 {
		return fmt.Errorf("prefill extracted nothing usable")
	}
	return nil
}

// ToDocument converts the extracted prefill into a canonical document.
func (p *PrefillPayload) ToDocument() cvdata.Document {
	return cvdata.Document{
		Contact:   p.Contact,
		Profile:   p.Profile,
		Work:      p.Work,
		Further:   p.Further,
		Education: p.Education,
		Skills:    p.Skills,
		Languages: p.Languages,
		Interests: p.Interests,
	}
}

// ContactPayload is the payload of an extract-contact call.
type ContactPayload struct {
	Contact cvdata.Contact `json:"contact"`
}

func (p *ContactPayload) Validate() error {
	c := p.Contact
	if c.Name == "" && c.Email == "" && c.Phone == "" && c.Address == "" && len(c.Links) == 0 {
		return fmt.Errorf("contact payload empty")
	}
	return nil
}

// EducationPayload is the payload of an extract-education call. It carries
// the full resulting list, not a delta.
type EducationPayload struct {
	Education []cvdata.EducationEntry `json:"education"`
}

func (p *EducationPayload) Validate() error {
	if len(p.Education) == 0 {
		return fmt.Errorf("education payload empty")
	}
	for i, entry := range p.Education {
		if strings.TrimSpace(entry.Institution) == "" {
			return fmt.Errorf("education[%d] has no institution", i)
		}
	}
	return nil
}

// WorkTailorPayload is the payload of a tailor-work call: the complete
// rewritten work section.
type WorkTailorPayload struct {
	Work []cvdata.WorkEntry `json:"work"`
}

func (p *WorkTailorPayload) Validate() error {
	if len(p.Work) == 0 {
		return fmt.Errorf("tailored work section empty")
	}
	for i, entry := range p.Work {
		if strings.TrimSpace(entry.Company) == "" || strings.TrimSpace(entry.Role) == "" {
			return fmt.Errorf("work[%d] missing company or role", i)
		}
	}
	return nil
}

// SkillsTailorPayload is the payload of a tailor-skills call.
type SkillsTailorPayload struct {
	Skills []string `json:"skills"`
}

func (p *SkillsTailorPayload) Validate() error {
	if len(p.Skills) == 0 {
		return fmt.Errorf("tailored skills list empty")
	}
	return nil
}

// Letter is a drafted cover letter.
type Letter struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// LetterPayload is the payload of a cover-letter call.
type LetterPayload struct {
	Letter Letter `json:"letter"`
}

func (p *LetterPayload) Validate() error {
	if strings.TrimSpace(p.Letter.Body) == "" {
		return fmt.Errorf("cover letter body empty")
	}
	return nil
}
