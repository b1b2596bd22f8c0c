package normalize

import "strings"

// fallbackName is used when a title sanitizes to nothing.
const fallbackName = "unbenannt"

// DirectoryName maps a recipe title to a directory-safe name. Characters
// outside the allow-list (ASCII letters, digits, German umlauts/ß, space
// and a small punctuation set) are dropped, not replaced. Distinct titles
// may collide after sanitizing; the output writer detects that via the
// directory-already-exists check.
func DirectoryName(title string) string {
	var b strings.Builder
	for _, ch := range title {
		if allowedRune(ch) {
			b.WriteRune(ch)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return fallbackName
	}
	return name
}

func allowedRune(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == ' ', ch == '-', ch == '_', ch == '.', ch == ',', ch == '(', ch == ')':
		return true
	}
	switch ch {
	case 'ä', 'ö', 'ü', 'Ä', 'Ö', 'Ü', 'ß':
		return true
	}
	return false
}
