package capability

import (
	"strings"

	"github.com/oshokin/winpack/internal/domain/packaging"
)

const indent = "    "

// RenderXML renders the children of the manifest <Capabilities> element.
// The full trust capability always comes first. Capability elements precede
// DeviceCapability elements as the manifest schema requires.
func RenderXML(capabilities *packaging.Capabilities) string {
	var builder strings.Builder

	writeElement(&builder, "rescap:Capability", FullTrust)

	if capabilities == nil {
		return strings.TrimSuffix(builder.String(), "\n")
	}

	for _, token := range capabilities.General {
		writeElement(&builder, "Capability", token)
	}

	for _, token := range capabilities.Restricted {
		writeElement(&builder, "rescap:Capability", token)
	}

	for _, token := range capabilities.Device {
		writeElement(&builder, "DeviceCapability", token)
	}

	return strings.TrimSuffix(builder.String(), "\n")
}

func writeElement(builder *strings.Builder, element, name string) {
	builder.WriteString(indent)
	builder.WriteString("<")
	builder.WriteString(element)
	builder.WriteString(` Name="`)
	builder.WriteString(name)
	builder.WriteString(`" />`)
	builder.WriteString("\n")
}
