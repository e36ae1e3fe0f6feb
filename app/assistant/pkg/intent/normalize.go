package intent

import (
	"strings"

	"golang.org/x/text/width"
)

// thaiDigits ๐..๙ to 0..9
var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)

// Normalize folds full-width and Thai digits to ASCII, lowercases and trims.
// Every matcher in this package works on normalized text.
func Normalize(utterance string) string {
	s := width.Fold.String(utterance)
	s = thaiDigits.Replace(s)
	return strings.TrimSpace(strings.ToLower(s))
}
