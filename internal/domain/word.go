package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Word represents an english word with its russian translation.
// AddedBy is nil for seed words shared by every user.
type Word struct {
	ID          int64
	English     string
	Translation string
	AddedBy     *int64
}

// IsShared reports whether the word belongs to the seed set
func (w Word) IsShared() bool {
	return w.AddedBy == nil
}

// OwnedBy reports whether userID added the word
func (w Word) OwnedBy(userID int64) bool {
	return w.AddedBy != nil && *w.AddedBy == userID
}

// NormalizeEnglish trims and lowercases an english word.
// The result must be non-empty and consist of letters and spaces only.
func NormalizeEnglish(s string) (string, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	if word == "" {
		return "", fmt.Errorf("%w: empty word", ErrInvalidInput)
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidInput, r)
		}
	}
	return word, nil
}

// NormalizeTranslation trims a translation and rejects empty ones
func NormalizeTranslation(s string) (string, error) {
	translation := strings.TrimSpace(s)
	if translation == "" {
		return "", fmt.Errorf("%w: empty translation", ErrInvalidInput)
	}
	return translation, nil
}
