package logger

import (
	"strconv"
	"strings"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FormatVector renders a feature vector for log output, shortened to limit runes.
func FormatVector(features []float64, limit int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range features {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(f, 'g', 4, 64))
	}
	b.WriteByte(']')
	return TruncateForLog(b.String(), limit)
}
