package cvdata

// MergeWork replaces the work section with the given entries. Used when the
// user accepts a tailoring proposal; rejection leaves the document untouched.
func (d *Document) MergeWork(entries []WorkEntry) {
	d.Work = cloneWork(entries)
}

// MergeFurther replaces the further-experience section with the given
// entries.
func (d *Document) MergeFurther(entries []WorkEntry) {
	d.Further = cloneWork(entries)
}

// ReplaceSkills replaces the skills list with the given items.
func (d *Document) ReplaceSkills(skills []string) {
	d.Skills = append([]string(nil), skills...)
}

// AdoptPrefill copies an imported prefill into the document wholesale.
// Import confirmation is all-or-nothing; per-field edits happen afterwards
// in the regular wizard stages.
func (d *Document) AdoptPrefill(prefill Document) {
	photo := d.PhotoDataURI
	theme := d.ThemeID
	language := d.Language
	*d = prefill.Clone()
	if d.PhotoDataURI == "" {
		d.PhotoDataURI = photo
	}
	if d.ThemeID == "" {
		d.ThemeID = theme
	}
	if d.Language == "" {
		d.Language = language
	}
}
