package manifest

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

//go:embed templates/*.xml
var templates embed.FS

// DefaultTemplate is the built-in manifest template.
//
//nolint:gochecknoglobals // Read-only embedded asset.
var DefaultTemplate = mustTemplate("manifest.xml")

// placeholderPattern matches any {{TOKEN}} left in rendered text.
var placeholderPattern = regexp.MustCompile(`\{\{[A-Z0-9_]+\}\}`)

func mustTemplate(name string) string {
	contents, err := loadTemplate(name)
	if err != nil {
		panic(err)
	}

	return contents
}

func loadTemplate(name string) (string, error) {
	contents, err := templates.ReadFile(path.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", name, err)
	}

	return string(contents), nil
}

// substitute replaces each {{KEY}} in text with values[KEY] verbatim.
func substitute(text string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// escape makes value safe for XML text and attribute positions.
func escape(value string) string {
	var buffer bytes.Buffer

	// Writes to a bytes.Buffer do not fail.
	_ = xml.EscapeText(&buffer, []byte(value))

	return buffer.String()
}

// dropBlankLines removes lines that only contain whitespace, left behind by optional parts.
func dropBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// unresolved returns the placeholders used by text that have no entry in values, once each.
// It inspects the template before substitution, so substituted values never count.
func unresolved(text string, values map[string]string) []string {
	markers := lo.Uniq(placeholderPattern.FindAllString(text, -1))

	return lo.Filter(markers, func(marker string, _ int) bool {
		_, ok := values[strings.Trim(marker, "{}")]

		return !ok
	})
}

// checkPlaceholders fails when text uses a placeholder that values do not fill.
func checkPlaceholders(name, text string, values map[string]string) error {
	if missing := unresolved(text, values); len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrUnresolvedPlaceholder, name, strings.Join(missing, ", "))
	}

	return nil
}
