package jobposting

import (
	"fmt"
	"strings"
)

// MinPostingChars is the minimum length pasted or fetched posting text must
// have before analysis is attempted.
const MinPostingChars = 80

// TooShortError reports posting text below the minimum. Callers keep the
// original text so the user can extend it instead of repasting.
type TooShortError struct {
	Length int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("posting text is %d characters, need at least %d", e.Length, MinPostingChars)
}

// CheckPostingText validates that pasted text is long enough to analyze.
func CheckPostingText(text string) error {
	length := len([]rune(strings.TrimSpace(text)))
	if length < MinPostingChars {
		return &TooShortError{Length: length}
	}
	return nil
}
