package resolver

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

const versionSegments = 4

// NormalizeVersion returns version as exactly four dot-separated numeric segments.
// Missing segments are padded with "0" and extra segments are dropped.
// Semantic versions with pre-release or build suffixes keep major.minor.patch.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}

	segments := strings.Split(version, ".")

	if !allNumeric(segments) {
		if parsed, err := semver.NewVersion(version); err == nil {
			segments = []string{
				strconv.FormatInt(parsed.Major(), 10),
				strconv.FormatInt(parsed.Minor(), 10),
				strconv.FormatInt(parsed.Patch(), 10),
			}
		}
	}

	normalized := make([]string, versionSegments)
	for i := range normalized {
		if i < len(segments) {
			normalized[i] = leadingNumber(segments[i])
		} else {
			normalized[i] = "0"
		}
	}

	return strings.Join(normalized, ".")
}

func allNumeric(segments []string) bool {
	for _, segment := range segments {
		if segment == "" || strings.TrimLeft(segment, "0123456789") != "" {
			return false
		}
	}

	return true
}

// leadingNumber keeps the leading digits of segment, "0" when there are none.
func leadingNumber(segment string) string {
	end := 0
	for end < len(segment) && segment[end] >= '0' && segment[end] <= '9' {
		end++
	}

	if end == 0 {
		return "0"
	}

	value, err := strconv.ParseUint(segment[:end], 10, 64)
	if err != nil {
		return segment[:end]
	}

	return strconv.FormatUint(value, 10)
}
