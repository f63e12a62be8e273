package domain

// Truncate shortens text to at most limit characters and appends Ellipsis when
// anything was cut. Applying it twice yields the same result as applying it once.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit]) + Ellipsis
}
