package scoring

import (
	"regexp"
	"strconv"
)

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO 8601 duration string (e.g. "PT15M33S") into
// total seconds. Empty or unparseable input yields 0; that is the defined
// fallback, not an error.
func ParseDuration(iso string) int {
	if iso == "" {
		return 0
	}

	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(m[3]))

	return hours*3600 + minutes*60 + seconds
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
