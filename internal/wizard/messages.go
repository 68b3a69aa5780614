package wizard

import "fmt"

// messages holds every user-facing string in both product languages.
// Format verbs are filled through msgf. The German column is the product
// default; missing keys fall back to it.
var messages = map[string]map[string]string{
	"de": {
		"language.welcome": "Willkommen beim Lebenslauf-Assistenten! In welcher Sprache soll deine Bewerbung entstehen? / Welcome! Which language should your application be in?",
		"language.hint":    "Bitte wähle Deutsch oder Englisch. / Please choose German or English.",
		"language.title":   "Sprache wählen / Choose language",
		"language.de":      "Deutsch",
		"language.en":      "English",
		"language.locked":  "Die Sprache ist für diese Bewerbung bereits festgelegt.",

		"import.title":     "Hochgeladenen Lebenslauf übernehmen?",
		"import.text":      "Ich habe deinen hochgeladenen Lebenslauf gelesen. Soll ich die erkannten Daten als Ausgangspunkt übernehmen?",
		"import.confirm":   "Daten übernehmen",
		"import.decline":   "Ohne Import starten",
		"import.intro":     "Alles klar, ich habe deine Datei ausgewertet. Schau dir die erkannten Daten an.",
		"import.confirmed": "Die Daten sind übernommen. Prüfe jetzt bitte deine Kontaktdaten.",
		"import.declined":  "In Ordnung, wir starten mit einem leeren Lebenslauf. Zuerst deine Kontaktdaten.",
		"import.failed":    "Deine Datei konnte leider nicht gelesen werden. Wir machen ohne Import weiter.",

		"contact.title":   "Kontaktdaten",
		"contact.text":    "Prüfe oder ergänze deine Kontaktdaten. Du kannst mir Änderungen auch einfach schreiben.",
		"contact.intro":   "Los geht's mit deinen Kontaktdaten.",
		"contact.confirm": "Kontaktdaten bestätigen",
		"contact.updated": "Ich habe deine Kontaktdaten aktualisiert.",
		"contact.missing": "Name und E-Mail-Adresse werden benötigt, bevor es weitergehen kann.",

		"education.title":     "Ausbildung",
		"education.text":      "Hier ist deine Ausbildung. Schreib mir Änderungen oder bestätige die Liste.",
		"education.confirm":   "Ausbildung bestätigen",
		"education.updated":   "Ich habe deine Ausbildung aktualisiert.",
		"education.confirmed": "Ausbildung gespeichert.",

		"fastpath.applied": "Ich habe deine gespeicherten Kontakt- und Ausbildungsdaten übernommen. Weiter mit der Stellenanzeige.",

		"posting.title":        "Stellenanzeige",
		"posting.text":         "Hast du eine Stellenanzeige, auf die der Lebenslauf zugeschnitten werden soll?",
		"posting.paste":        "Anzeige einfügen",
		"posting.skip":         "Ohne Anzeige fortfahren",
		"posting.paste_title":  "Stellenanzeige einfügen",
		"posting.paste_text":   "Füge den Text der Stellenanzeige ein oder schicke mir einen Link.",
		"posting.analyze":      "Anzeige analysieren",
		"posting.discard":      "Text verwerfen",
		"posting.received":     "Ich habe %d Zeichen erhalten. Soll ich die Anzeige analysieren?",
		"posting.too_short":    "Der Text ist zu kurz für eine Stellenanzeige (mindestens %d Zeichen). Dein Text bleibt erhalten.",
		"posting.analyzed":     "Analysiert: %s. Magst du mir noch Hinweise fürs Zuschneiden geben?",
		"posting.already":      "Für diese Sitzung ist bereits eine Anzeige analysiert: %s.",
		"posting.fetch_failed": "Die Seite konnte nicht geladen werden. Füge den Text bitte direkt ein.",
		"posting.not_posting":  "Das sieht nicht nach einer Stellenanzeige aus. Prüfe den Text bitte.",
		"posting.discarded":    "Der Text ist verworfen.",

		"notes.title":    "Hinweise fürs Zuschneiden",
		"notes.text":     "Gibt es etwas, das ich beim Zuschneiden beachten soll? Schreib es mir einfach.",
		"notes.continue": "Weiter",
		"notes.saved":    "Notiert. Noch etwas, oder weiter?",

		"work.title":   "Berufserfahrung",
		"work.text":    "Hier ist deine Berufserfahrung. Ergänze Einträge über das Formular; Hinweise fürs Zuschneiden kannst du mir schreiben.",
		"work.confirm": "Berufserfahrung bestätigen",
		"work.updated": "Berufserfahrung aktualisiert.",

		"tailor.title":    "Vorschlag prüfen",
		"tailor.text":     "Mein Vorschlag, zugeschnitten auf die Anzeige. Übernehmen oder deine Fassung behalten?",
		"tailor.accept":   "Vorschlag übernehmen",
		"tailor.reject":   "Meine Fassung behalten",
		"tailor.retry":    "Neu vorschlagen",
		"tailor.skip":     "Schritt überspringen",
		"tailor.accepted": "Übernommen.",
		"tailor.rejected": "Alles klar, deine Fassung bleibt.",
		"tailor.none":     "Es liegt noch kein Vorschlag vor.",

		"further.title":   "Weitere Erfahrung",
		"further.text":    "Praktika, Ehrenamt oder Nebenprojekte? Trage sie über das Formular ein oder überspringe den Schritt.",
		"further.confirm": "Weitere Erfahrung bestätigen",
		"further.skip":    "Überspringen",
		"further.updated": "Weitere Erfahrung aktualisiert.",
		"further.hint":    "Nutze hier bitte das Formular oder überspringe den Schritt.",

		"skills.title":   "IT- und KI-Kenntnisse",
		"skills.text":    "Welche IT- und KI-Kenntnisse sollen in den Lebenslauf? Schreib sie mir durch Kommas getrennt.",
		"skills.confirm": "Kenntnisse bestätigen",
		"skills.skip":    "Überspringen",
		"skills.updated": "Kenntnisse aktualisiert.",

		"review.title":           "Zusammenfassung",
		"review.text":            "Prüfe deinen Lebenslauf. Über die Buttons kannst du einzelne Abschnitte noch einmal bearbeiten.",
		"review.valid":           "Alles im Rahmen: geschätzt %.1f Seiten.",
		"review.invalid":         "Der Lebenslauf überschreitet %d Grenzwert(e):",
		"review.generate":        "PDF erstellen",
		"review.edit_contact":    "Kontakt bearbeiten",
		"review.edit_education":  "Ausbildung bearbeiten",
		"review.edit_work":       "Berufserfahrung bearbeiten",
		"review.edit_further":    "Weitere Erfahrung bearbeiten",
		"review.edit_skills":     "Kenntnisse bearbeiten",
		"review.edit_hint":       "Bearbeite den Abschnitt und bestätige ihn, dann geht es zurück zur Zusammenfassung.",
		"review.profile_updated": "Profiltext aktualisiert.",
		"review.consent_updated": "Einwilligungstext aktualisiert.",
		"review.theme_set":       "Design übernommen.",
		"review.theme_unknown":   "Dieses Design kenne ich nicht.",

		"generate.title":  "PDF erstellen?",
		"generate.text":   "Geschätzter Umfang: %.1f Seiten. Soll ich das PDF jetzt erstellen?",
		"generate.yes":    "Ja, PDF erstellen",
		"generate.cancel": "Zurück zur Zusammenfassung",
		"generate.done":   "Dein Lebenslauf ist fertig!",
		"generate.failed": "Die PDF-Erstellung ist fehlgeschlagen. Versuch es bitte noch einmal.",

		"done.title":    "Fertig",
		"done.text":     "Dein Lebenslauf ist erstellt. Soll ich noch ein Anschreiben entwerfen?",
		"done.letter":   "Anschreiben entwerfen",
		"done.edit":     "Lebenslauf weiter bearbeiten",
		"done.finish":   "Abschließen",
		"done.farewell": "Viel Erfolg bei deiner Bewerbung!",

		"letter.title":    "Anschreiben prüfen",
		"letter.text":     "Mein Entwurf für dein Anschreiben. Übernehmen, verwerfen oder neu entwerfen?",
		"letter.accept":   "Anschreiben übernehmen",
		"letter.reject":   "Verwerfen",
		"letter.retry":    "Neu entwerfen",
		"letter.accepted": "Dein Anschreiben ist fertig!",
		"letter.rejected": "Der Entwurf ist verworfen.",

		"guard.stage_mismatch":  "Diese Aktion passt nicht zum aktuellen Schritt.",
		"guard.invalid_action":  "Diese Aktion kenne ich nicht.",
		"guard.payload":         "Die übermittelten Formulardaten konnten nicht gelesen werden.",
		"guard.readiness":       "Bevor ein PDF entsteht, müssen Kontaktdaten und Ausbildung bestätigt sein.",
		"guard.tailoring":       "Zum Zuschneiden brauche ich zuerst eine analysierte Stellenanzeige.",
		"model.failed":          "Das Sprachmodell hat gerade nicht geantwortet. Du kannst es erneut versuchen oder den Schritt überspringen.",
		"model.status":          "Das dauert gerade einen Moment, bitte hab etwas Geduld.",
		"freetext.disabled":     "Bitte entscheide über die Buttons weiter unten.",
		"session.lost":          "Diese Sitzung ist abgelaufen oder unbekannt. Starte bitte eine neue Bewerbung. / This session is expired or unknown, please start over.",
		"error.internal":        "Da ist intern etwas schiefgegangen. Versuch es bitte gleich noch einmal.",

		"field.name":      "Name",
		"field.email":     "E-Mail",
		"field.phone":     "Telefon",
		"field.address":   "Adresse",
		"field.links":     "Links",
		"field.profile":   "Profiltext",
		"field.notes":     "Hinweise",
		"field.posting":   "Stellenanzeige",
		"field.theme":     "Design",
		"field.consent":   "Einwilligung",
		"field.subject":   "Betreff",
		"field.body":      "Anschreiben",
		"field.skills":    "Kenntnisse",
		"field.languages": "Sprachen",
		"field.interests": "Interessen",
		"field.pages":     "Geschätzte Seiten",
	},
	"en": {
		"language.welcome": "Willkommen beim Lebenslauf-Assistenten! In welcher Sprache soll deine Bewerbung entstehen? / Welcome! Which language should your application be in?",
		"language.hint":    "Bitte wähle Deutsch oder Englisch. / Please choose German or English.",
		"language.title":   "Sprache wählen / Choose language",
		"language.de":      "Deutsch",
		"language.en":      "English",
		"language.locked":  "The language is already fixed for this application.",

		"import.title":     "Use your uploaded resume?",
		"import.text":      "I read your uploaded resume. Should I take the extracted data as a starting point?",
		"import.confirm":   "Use extracted data",
		"import.decline":   "Start without import",
		"import.intro":     "Done, I analyzed your file. Have a look at what I extracted.",
		"import.confirmed": "Imported. Now please check your contact details.",
		"import.declined":  "Alright, we start from a blank resume. First your contact details.",
		"import.failed":    "Unfortunately your file could not be read. We continue without an import.",

		"contact.title":   "Contact details",
		"contact.text":    "Check or complete your contact details. You can also just tell me what to change.",
		"contact.intro":   "Let's start with your contact details.",
		"contact.confirm": "Confirm contact details",
		"contact.updated": "I updated your contact details.",
		"contact.missing": "A name and an email address are required before we can continue.",

		"education.title":     "Education",
		"education.text":      "Here is your education. Tell me about changes or confirm the list.",
		"education.confirm":   "Confirm education",
		"education.updated":   "I updated your education.",
		"education.confirmed": "Education saved.",

		"fastpath.applied": "I restored your saved contact and education details. Next: the job posting.",

		"posting.title":        "Job posting",
		"posting.text":         "Do you have a job posting the resume should be tailored to?",
		"posting.paste":        "Paste a posting",
		"posting.skip":         "Continue without one",
		"posting.paste_title":  "Paste the job posting",
		"posting.paste_text":   "Paste the posting text here, or send me a link.",
		"posting.analyze":      "Analyze posting",
		"posting.discard":      "Discard text",
		"posting.received":     "I received %d characters. Should I analyze the posting?",
		"posting.too_short":    "That text is too short for a job posting (at least %d characters). Your text is kept.",
		"posting.analyzed":     "Analyzed: %s. Any guidance for tailoring?",
		"posting.already":      "A posting has already been analyzed for this session: %s.",
		"posting.fetch_failed": "That page could not be loaded. Please paste the text directly.",
		"posting.not_posting":  "That does not look like a job posting. Please check the text.",
		"posting.discarded":    "The text is discarded.",

		"notes.title":    "Tailoring guidance",
		"notes.text":     "Anything I should keep in mind while tailoring? Just tell me.",
		"notes.continue": "Continue",
		"notes.saved":    "Noted. Anything else, or continue?",

		"work.title":   "Work experience",
		"work.text":    "Here is your work experience. Add entries via the form; you can type tailoring guidance as text.",
		"work.confirm": "Confirm work experience",
		"work.updated": "Work experience updated.",

		"tailor.title":    "Review proposal",
		"tailor.text":     "My proposal, tailored to the posting. Take it, or keep your version?",
		"tailor.accept":   "Accept proposal",
		"tailor.reject":   "Keep my version",
		"tailor.retry":    "Propose again",
		"tailor.skip":     "Skip this step",
		"tailor.accepted": "Accepted.",
		"tailor.rejected": "Alright, your version stays.",
		"tailor.none":     "There is no proposal yet.",

		"further.title":   "Further experience",
		"further.text":    "Internships, volunteering, side projects? Add them via the form or skip this step.",
		"further.confirm": "Confirm further experience",
		"further.skip":    "Skip",
		"further.updated": "Further experience updated.",
		"further.hint":    "Please use the form here, or skip the step.",

		"skills.title":   "IT & AI skills",
		"skills.text":    "Which IT and AI skills should go on the resume? Type them separated by commas.",
		"skills.confirm": "Confirm skills",
		"skills.skip":    "Skip",
		"skills.updated": "Skills updated.",

		"review.title":           "Summary",
		"review.text":            "Review your resume. Use the buttons to revisit individual sections.",
		"review.valid":           "All within limits: estimated %.1f pages.",
		"review.invalid":         "The resume exceeds %d limit(s):",
		"review.generate":        "Generate PDF",
		"review.edit_contact":    "Edit contact",
		"review.edit_education":  "Edit education",
		"review.edit_work":       "Edit work experience",
		"review.edit_further":    "Edit further experience",
		"review.edit_skills":     "Edit skills",
		"review.edit_hint":       "Edit the section and confirm it to return to the summary.",
		"review.profile_updated": "Profile text updated.",
		"review.consent_updated": "Consent text updated.",
		"review.theme_set":       "Theme applied.",
		"review.theme_unknown":   "I do not know that theme.",

		"generate.title":  "Generate the PDF?",
		"generate.text":   "Estimated length: %.1f pages. Should I generate the PDF now?",
		"generate.yes":    "Yes, generate PDF",
		"generate.cancel": "Back to summary",
		"generate.done":   "Your resume is ready!",
		"generate.failed": "PDF generation failed. Please try again.",

		"done.title":    "Done",
		"done.text":     "Your resume is generated. Should I draft a cover letter as well?",
		"done.letter":   "Draft cover letter",
		"done.edit":     "Keep editing the resume",
		"done.finish":   "Finish",
		"done.farewell": "Good luck with your application!",

		"letter.title":    "Review cover letter",
		"letter.text":     "My draft for your cover letter. Accept, discard, or draft again?",
		"letter.accept":   "Accept letter",
		"letter.reject":   "Discard",
		"letter.retry":    "Draft again",
		"letter.accepted": "Your cover letter is ready!",
		"letter.rejected": "The draft is discarded.",

		"guard.stage_mismatch":  "That action does not fit the current step.",
		"guard.invalid_action":  "I do not know that action.",
		"guard.payload":         "The submitted form data could not be read.",
		"guard.readiness":       "Contact details and education must be confirmed before a PDF can be generated.",
		"guard.tailoring":       "Tailoring needs an analyzed job posting first.",
		"model.failed":          "The language model did not respond just now. You can retry or skip this step.",
		"model.status":          "This is taking a moment, please bear with me.",
		"freetext.disabled":     "Please decide using the buttons below.",
		"session.lost":          "Diese Sitzung ist abgelaufen oder unbekannt. Starte bitte eine neue Bewerbung. / This session is expired or unknown, please start over.",
		"error.internal":        "Something went wrong internally. Please try again in a moment.",

		"field.name":      "Name",
		"field.email":     "Email",
		"field.phone":     "Phone",
		"field.address":   "Address",
		"field.links":     "Links",
		"field.profile":   "Profile",
		"field.notes":     "Guidance",
		"field.posting":   "Job posting",
		"field.theme":     "Theme",
		"field.consent":   "Consent",
		"field.subject":   "Subject",
		"field.body":      "Letter",
		"field.skills":    "Skills",
		"field.languages": "Languages",
		"field.interests": "Interests",
		"field.pages":     "Estimated pages",
	},
}

// msg returns the localized string for key, falling back to German and then
// to the key itself so a missing entry stays visible instead of vanishing.
func msg(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages["de"][key]; ok {
		return s
	}
	return key
}

func msgf(lang, key string, args ...any) string {
	return fmt.Sprintf(msg(lang, key), args...)
}

// languageName spells a language code out for prompt templates.
func languageName(code string) string {
	if code == "en" {
		return "English"
	}
	return "German"
}
