package packaging

// AppConfig is the application-level document. Every field is optional.
type AppConfig struct {
	// ProductName is the human-readable product name.
	ProductName string `json:"productName,omitempty"`
	// Version is a dotted version string, usually semantic.
	Version string `json:"version,omitempty"`
	// Identifier is the reverse-domain application identifier.
	Identifier string `json:"identifier,omitempty"`
	// Bundle carries packaging hints shared with other platforms.
	Bundle *Bundle `json:"bundle,omitempty"`
}

// Bundle is the nested bundle sub-document of AppConfig.
type Bundle struct {
	// Icon lists icon files in preference order.
	Icon []string `json:"icon,omitempty"`
	// ShortDescription is used as the manifest description.
	ShortDescription string `json:"shortDescription,omitempty"`
	// LongDescription is informational only.
	LongDescription string `json:"longDescription,omitempty"`
	// Publisher is the fallback publisher distinguished name.
	Publisher string `json:"publisher,omitempty"`
	// Windows holds Windows-only bundle settings.
	Windows *WindowsBundle `json:"windows,omitempty"`
}

// WindowsBundle holds Windows-only bundle settings.
type WindowsBundle struct {
	// CertificateThumbprint selects a certificate from the store when no certificate file is configured.
	CertificateThumbprint string `json:"certificateThumbprint,omitempty"`
}

// ShortDescription returns the bundle short description or an empty string.
func (a *AppConfig) ShortDescription() string {
	if a == nil || a.Bundle == nil {
		return ""
	}

	return a.Bundle.ShortDescription
}

// BundlePublisher returns the bundle publisher or an empty string.
func (a *AppConfig) BundlePublisher() string {
	if a == nil || a.Bundle == nil {
		return ""
	}

	return a.Bundle.Publisher
}

// CertificateThumbprint returns the Windows signing thumbprint or an empty string.
func (a *AppConfig) CertificateThumbprint() string {
	if a == nil || a.Bundle == nil || a.Bundle.Windows == nil {
		return ""
	}

	return a.Bundle.Windows.CertificateThumbprint
}
