package manifest

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// PseudoCLSID derives a braced, upper-case 8-4-4-4-12 identifier from seed.
// The same seed always gives the same result. The value is not a real GUID.
func PseudoCLSID(seed string) string {
	hash := int64(stringHash(seed))

	first := hexPadded(abs(hash), 8)
	second := hexPadded(abs(hash*31), 8)
	third := hexPadded(abs(hash*37), 8)
	fourth := hexPadded(abs(hash*41), 12)

	return strings.ToUpper(fmt.Sprintf("{%s-%s-%s-%s-%s}",
		first[:8], second[:4], second[4:8], third[:4], fourth[:12]))
}

// stringHash is the polynomial hash h = h*31 + c over UTF-16 code units, wrapping at 32 bits.
func stringHash(seed string) int32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + int32(unit)
	}

	return hash
}

func hexPadded(value int64, width int) string {
	return fmt.Sprintf("%0*x", width, value)
}

func abs(value int64) int64 {
	if value < 0 {
		return -value
	}

	return value
}

// unbraced strips the surrounding braces from a CLSID.
func unbraced(clsid string) string {
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(clsid), "{"), "}")
}

// handlerName builds a file type association name from the first 8 characters of clsid.
func handlerName(prefix, clsid string) string {
	slug := strings.ToLower(unbraced(clsid))
	if len(slug) > 8 {
		slug = slug[:8]
	}

	return prefix + "-" + slug
}
