package packaging

// Config is the packaging document. It is authoritative for every packaging-only concern.
type Config struct {
	// Publisher is the publisher distinguished name, e.g. "CN=Contoso".
	Publisher string `json:"publisher,omitempty"`
	// PublisherDisplayName is shown to users by the installer.
	PublisherDisplayName string `json:"publisherDisplayName,omitempty"`
	// Capabilities declares the platform permissions the application needs.
	Capabilities *Capabilities `json:"capabilities,omitempty"`
	// Extensions declares optional platform integrations.
	Extensions *Extensions `json:"extensions,omitempty"`
	// Signing configures package signing.
	Signing *Signing `json:"signing,omitempty"`
	// ResourceIndex enables resources.pri generation before packing.
	ResourceIndex *ResourceIndex `json:"resourceIndex,omitempty"`
}

// Capabilities holds the three capability categories.
type Capabilities struct {
	General    []string `json:"general,omitempty"`
	Device     []string `json:"device,omitempty"`
	Restricted []string `json:"restricted,omitempty"`
}

// Signing points at the code signing certificate.
type Signing struct {
	// Certificate is the path to a PFX file.
	Certificate string `json:"certificate,omitempty"`
	// Password unlocks the PFX file.
	Password string `json:"password,omitempty"`
}

// ResourceIndex is the resource indexing preference.
type ResourceIndex struct {
	Enabled bool `json:"enabled"`
}

// Merged is the resolved configuration. It is built once by the resolver and never modified afterwards.
type Merged struct {
	DisplayName          string
	Version              string
	Description          string
	Identifier           string
	Publisher            string
	PublisherDisplayName string
	// CertificateThumbprint comes from the app bundle and is only used by the signing step.
	CertificateThumbprint string

	Capabilities  Capabilities
	Extensions    Extensions
	Signing       *Signing
	ResourceIndex *ResourceIndex
}

// ResourceIndexEnabled reports whether resources.pri should be generated.
func (m *Merged) ResourceIndexEnabled() bool {
	return m.ResourceIndex != nil && m.ResourceIndex.Enabled
}
