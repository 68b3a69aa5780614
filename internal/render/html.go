package render

import (
	"html/template"
	"strings"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// sectionLabels are the printed section headings. They follow the document's
// content language, not the UI language.
type sectionLabels struct {
	Profile   string
	Work      string
	Further   string
	Education string
	Skills    string
	Languages string
	Interests string
}

var labelsByLanguage = map[string]sectionLabels{
	"de": {
		Profile:   "Profil",
		Work:      "Berufserfahrung",
		Further:   "Weitere Erfahrung",
		Education: "Ausbildung",
		Skills:    "IT- und KI-Kenntnisse",
		Languages: "Sprachen",
		Interests: "Interessen",
	},
	"en": {
		Profile:   "Profile",
		Work:      "Work Experience",
		Further:   "Further Experience",
		Education: "Education",
		Skills:    "IT & AI Skills",
		Languages: "Languages",
		Interests: "Interests",
	},
}

func labelsFor(language string) sectionLabels {
	if labels, ok := labelsByLanguage[language]; ok {
		return labels
	}
	return labelsByLanguage["de"]
}

// templateData is the structure every theme template is executed against.
type templateData struct {
	Lang      string
	Labels    sectionLabels
	Contact   cvdata.Contact
	Photo     template.URL
	Profile   string
	Work      []cvdata.WorkEntry
	Further   []cvdata.WorkEntry
	Education []cvdata.EducationEntry
	Skills    []string
	Languages []string
	Interests []string
	Consent   string
	CSS       template.CSS
}

// BuildHTML executes the theme template against the document. The output is
// a self-contained page: the stylesheet is inlined and the photo travels as
// a data URI, so printing needs no extra fetches.
func BuildHTML(doc *cvdata.Document, theme *Theme) (string, error) {
	tmpl, err := template.New(theme.ID).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(theme.HTML)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse theme template", Cause: err}
	}

	lang := doc.Language
	if lang == "" {
		lang = "de"
	}
	data := templateData{
		Lang:      lang,
		Labels:    labelsFor(doc.Language),
		Contact:   doc.Contact,
		Photo:     template.URL(doc.PhotoDataURI),
		Profile:   doc.Profile,
		Work:      doc.Work,
		Further:   doc.Further,
		Education: doc.Education,
		Skills:    doc.Skills,
		Languages: doc.Languages,
		Interests: doc.Interests,
		Consent:   doc.ConsentText,
		CSS:       template.CSS(theme.CSS),
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute theme template", Cause: err}
	}
	return out.String(), nil
}

// letterData is the structure letter templates are executed against.
type letterData struct {
	Lang       string
	Contact    cvdata.Contact
	Subject    string
	Paragraphs []string
	CSS        template.CSS
}

// BuildLetterHTML executes the theme's letter template against an accepted
// letter draft. Themes without their own letter template get the built-in
// classic letter sheet.
func BuildLetterHTML(doc *cvdata.Document, letter *Letter, theme *Theme) (string, error) {
	src := theme.Letter
	if src == "" {
		fallback, err := themeFS.ReadFile("themes/" + DefaultThemeID + "/letter.html")
		if err != nil {
			return "", &TemplateError{Message: "no letter template available", Cause: err}
		}
		src = string(fallback)
	}

	tmpl, err := template.New(theme.ID + "-letter").Parse(src)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse letter template", Cause: err}
	}

	lang := doc.Language
	if lang == "" {
		lang = "de"
	}
	data := letterData{
		Lang:       lang,
		Contact:    doc.Contact,
		Subject:    letter.Subject,
		Paragraphs: splitParagraphs(letter.Body),
		CSS:        template.CSS(theme.CSS),
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute letter template", Cause: err}
	}
	return out.String(), nil
}

// splitParagraphs turns letter body text into paragraphs, one per non-empty
// line block.
func splitParagraphs(body string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}
