package crawl

import "fmt"

// TruncateURL shortens url to maxLen bytes for display. The tail is kept
// since the article name sits at the end of a wiki URL.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats a byte count in binary units.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value, suffix := float64(n)/unit, "KB"
	for _, s := range []string{"MB", "GB"} {
		if value < unit {
			break
		}
		value /= unit
		suffix = s
	}
	return fmt.Sprintf("%.1f %s", value, suffix)
}
