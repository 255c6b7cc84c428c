package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration formats a duration in seconds as MM:SS, or HH:MM:SS when the
// duration reaches one hour. Non-positive durations render as "00:00".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "00:00"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatDurationMillis formats a duration in milliseconds, rounding down to
// whole seconds.
func FormatDurationMillis(millis int64) string {
	return FormatDuration(millis / 1000)
}

// FormatProgress renders a playback position as "MM:SS / MM:SS".
func FormatProgress(progressSeconds, totalSeconds int64) string {
	return FormatDuration(progressSeconds) + " / " + FormatDuration(totalSeconds)
}

// FormatPercentage renders a percentage with one decimal, e.g. "42.5%".
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// HumanReadableSize renders a byte count using binary units, e.g. "3.4 MB".
func HumanReadableSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	unitIndex := 0

	for size >= 1024 && unitIndex < len(units)-1 {
		size /= 1024
		unitIndex++
	}

	return fmt.Sprintf("%.1f %s", size, units[unitIndex])
}

// FormatAmount renders a monetary amount stored in minor units for display.
// XOF has no minor unit and is grouped with a FCFA suffix; EUR and USD use two
// decimals. Other currencies fall back to "<amount> <code>".
func FormatAmount(minorUnits int64, currency string) string {
	switch strings.ToUpper(currency) {
	case "XOF", "CFA":
		return groupThousands(minorUnits) + " FCFA"
	case "EUR":
		return fmt.Sprintf("%.2f €", float64(minorUnits)/100)
	case "USD":
		return fmt.Sprintf("$%.2f", float64(minorUnits)/100)
	default:
		return fmt.Sprintf("%.2f %s", float64(minorUnits)/100, strings.ToUpper(currency))
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatCompactNumber formats a counter in compact notation (1.2K, 3.4M).
// Values under 1000 keep up to three decimals with trailing zeros trimmed.
func FormatCompactNumber(num float64) string {
	if num < 1000 {
		formatted := fmt.Sprintf("%.3f", num)
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
		return formatted
	}

	units := []string{"K", "M", "B", "T"}
	power := int(math.Floor(math.Log(num) / math.Log(1000)))
	if power > len(units) {
		power = len(units)
	}

	value := num / math.Pow(1000, float64(power))
	formatted := fmt.Sprintf("%.3f", value)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + units[power-1]
}

// GenerateSlug derives a URL slug from a display name: accents folded, anything
// outside [a-z0-9] collapsed into single dashes.
func GenerateSlug(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return ""
	}

	replacements := []struct {
		from string
		to   string
	}{
		{"àáâäã", "a"},
		{"èéêë", "e"},
		{"ìíîï", "i"},
		{"òóôöõ", "o"},
		{"ùúûü", "u"},
		{"ç", "c"},
		{"ñ", "n"},
	}

	var b strings.Builder
	for _, r := range name {
		replaced := false
		for _, rep := range replacements {
			if strings.ContainsRune(rep.from, r) {
				b.WriteString(rep.to)
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	return strings.Trim(slug, "-")
}
