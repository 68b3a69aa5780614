package layout

import (
	"math"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// Approximate vertical footprints of each block in the bundled A4 themes,
// in millimetres. A4 is 297mm tall; the themes print with 20mm top and
// bottom margins.
const (
	usableHeightMM  = 297.0 - 2*20.0
	contactBlockMM  = 30.0
	sectionHeaderMM = 8.0
	textLineMM      = 5.0
	textLineChars   = 90
	workEntryBaseMM = 12.0
	workBulletMM    = 5.0
	educationItemMM = 10.0
	listItemMM      = 5.0
)

// EstimatePages returns the estimated rendered page count for a document,
// rounded up to a tenth of a page. The estimate is intentionally on the
// generous side: a document that fits the estimate fits the print.
func EstimatePages(doc cvdata.Document) float64 {
	mm := estimateHeightMM(doc)
	pages := mm / usableHeightMM
	return math.Ceil(pages*10) / 10
}

func estimateHeightMM(doc cvdata.Document) float64 {
	total := contactBlockMM

	if doc.Profile != "" {
		total += sectionHeaderMM + textBlockMM(doc.Profile)
	}
	if len(doc.Work) > 0 {
		total += sectionHeaderMM
		for _, entry := range doc.Work {
			total += workEntryBaseMM + float64(len(entry.Bullets))*workBulletMM
		}
	}
	if len(doc.Further) > 0 {
		total += sectionHeaderMM
		for _, entry := range doc.Further {
			total += workEntryBaseMM + float64(len(entry.Bullets))*workBulletMM
		}
	}
	if len(doc.Education) > 0 {
		total += sectionHeaderMM + float64(len(doc.Education))*educationItemMM
	}
	total += listSectionMM(doc.Skills)
	total += listSectionMM(doc.Languages)
	total += listSectionMM(doc.Interests)
	if doc.ConsentText != "" {
		// Consent is a fixed one-line phrase set by the wizard.
		total += textLineMM
	}

	return total
}

func textBlockMM(text string) float64 {
	lines := math.Ceil(float64(len([]rune(text))) / textLineChars)
	if lines < 1 {
		lines = 1
	}
	return lines * textLineMM
}

func listSectionMM(items []string) float64 {
	if len(items) == 0 {
		return 0
	}
	return sectionHeaderMM + float64(len(items))*listItemMM
}
