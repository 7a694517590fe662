package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/winpack/internal/domain/packaging"
)

// TestAssemble_DefaultTemplate fills every placeholder of the built-in template.
func TestAssemble_DefaultTemplate(t *testing.T) {
	t.Parallel()

	merged := newMerged(packaging.Extensions{ShareTarget: true})
	merged.Capabilities = packaging.Capabilities{General: []string{"internetClient"}}

	out, err := Assemble(merged, "arm64", "10.0.17763.0", DefaultTemplate)
	require.NoError(t, err)

	require.Contains(t, out, `Name="com.example.testapp"`)
	require.Contains(t, out, `Publisher="CN=TestCompany"`)
	require.Contains(t, out, `Version="1.0.0.0"`)
	require.Contains(t, out, `ProcessorArchitecture="arm64"`)
	require.Contains(t, out, `MinVersion="10.0.17763.0"`)
	require.Contains(t, out, `Executable="TestApp.exe"`)
	require.Contains(t, out, "<PublisherDisplayName>Test Company</PublisherDisplayName>")
	require.Contains(t, out, `<rescap:Capability Name="runFullTrust" />`)
	require.Contains(t, out, `<Capability Name="internetClient" />`)
	require.Contains(t, out, "windows.shareTarget")
	require.NotRegexp(t, placeholderPattern, out)
}

// TestAssemble_NoExtensions leaves no empty wrapper behind.
func TestAssemble_NoExtensions(t *testing.T) {
	t.Parallel()

	out, err := Assemble(newMerged(packaging.Extensions{}), "x64", "10.0.17763.0", DefaultTemplate)
	require.NoError(t, err)
	require.NotContains(t, out, "<Extensions>")
	require.Equal(t, 1, strings.Count(out, "runFullTrust"))
}

// TestAssemble_CustomTemplate substitutes literally and rejects unknown placeholders.
func TestAssemble_CustomTemplate(t *testing.T) {
	t.Parallel()

	merged := newMerged(packaging.Extensions{})
	merged.Description = ""
	merged.DisplayName = "A & B"

	out, err := Assemble(merged, "x86", "10.0.0.0", "{{DISPLAY_NAME}}|{{DESCRIPTION}}|{{ARCHITECTURE}}|{{EXTENSIONS}}")
	require.NoError(t, err)
	require.Equal(t, "A &amp; B|A &amp; B|x86|", out)

	_, err = Assemble(merged, "x86", "10.0.0.0", "{{DISPLAY_NAME}} {{ICON}} {{ICON}}")
	require.ErrorIs(t, err, ErrUnresolvedPlaceholder)
	require.Contains(t, err.Error(), "{{ICON}}")
}

// TestAssemble_ValuesWithPlaceholderSyntax keeps user text that looks like a placeholder.
func TestAssemble_ValuesWithPlaceholderSyntax(t *testing.T) {
	t.Parallel()

	merged := newMerged(packaging.Extensions{
		ProtocolHandlers: []packaging.ProtocolHandler{{Name: "macro", DisplayName: "Open {{FILE}}"}},
	})
	merged.Description = "Renders {{NAME}} macros"

	out, err := Assemble(merged, "x64", "10.0.17763.0", DefaultTemplate)
	require.NoError(t, err)
	require.Contains(t, out, `Description="Renders {{NAME}} macros"`)
	require.Contains(t, out, "<uap:DisplayName>Open {{FILE}}</uap:DisplayName>")
}

// TestUnresolved reports only template markers without a value.
func TestUnresolved(t *testing.T) {
	t.Parallel()

	values := map[string]string{"NAME": "{{OTHER}}"}

	require.Empty(t, unresolved("<a>{{NAME}}</a>", values))
	require.Equal(t, []string{"{{ICON}}"}, unresolved("{{NAME}} {{ICON}} {{ICON}}", values))
	require.Equal(t, []string{"{{NAME}}"}, unresolved("{{NAME}}", nil))
}
