package capability

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/oshokin/winpack/internal/domain/packaging"
)

// FullTrust is rendered into every manifest. It is not part of any user-facing vocabulary.
const FullTrust = "runFullTrust"

// Category names a capability vocabulary.
type Category string

// Capability categories, in validation order.
const (
	CategoryGeneral    Category = "general"
	CategoryDevice     Category = "device"
	CategoryRestricted Category = "restricted"
)

//nolint:gochecknoglobals // Closed, versioned platform vocabularies.
var (
	// General lists capabilities any application may declare.
	General = mapset.NewSet(
		"internetClient",
		"internetClientServer",
		"privateNetworkClientServer",
		"allJoyn",
		"codeGeneration",
	)

	// Device lists device capabilities.
	Device = mapset.NewSet(
		"webcam",
		"microphone",
		"location",
		"proximity",
		"bluetooth",
		"wiFiControl",
		"radios",
		"usb",
		"humaninterfacedevice",
		"pointOfService",
		"serialcommunication",
		"gazeInput",
	)

	// Restricted lists restricted capabilities that need store approval.
	Restricted = mapset.NewSet(
		"broadFileSystemAccess",
		"documentsLibrary",
		"picturesLibrary",
		"videosLibrary",
		"musicLibrary",
		"enterpriseAuthentication",
		"sharedUserCertificates",
		"userAccountInformation",
		"appointments",
		"contacts",
		"phoneCall",
		"chat",
		"removableStorage",
		"allowElevation",
		"unvirtualizedResources",
		"packageManagement",
		"packageQuery",
		"localSystemServices",
		"inputInjectionBrokered",
		"appDiagnostics",
	)
)

// InvalidTokenError reports one capability token outside its category's vocabulary.
type InvalidTokenError struct {
	Category Category
	Token    string
	// Valid is the sorted vocabulary of Category.
	Valid []string
}

// Error implements the error interface.
func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid %s capability %q, valid values are: %s",
		e.Category, e.Token, strings.Join(e.Valid, ", "))
}

// Check returns every invalid token as an *InvalidTokenError combined with multierr, or nil.
// Categories are checked general, device, restricted; tokens keep declaration order.
func Check(capabilities *packaging.Capabilities) error {
	if capabilities == nil {
		return nil
	}

	var combined error

	check := func(category Category, declared []string, vocabulary mapset.Set[string]) {
		for _, token := range declared {
			if vocabulary.Contains(token) {
				continue
			}

			combined = multierr.Append(combined, &InvalidTokenError{
				Category: category,
				Token:    token,
				Valid:    sorted(vocabulary),
			})
		}
	}

	check(CategoryGeneral, capabilities.General, General)
	check(CategoryDevice, capabilities.Device, Device)
	check(CategoryRestricted, capabilities.Restricted, Restricted)

	return combined
}

// Validate returns one message per invalid token, in the order Check reports them.
func Validate(capabilities *packaging.Capabilities) []string {
	return lo.Map(multierr.Errors(Check(capabilities)), func(err error, _ int) string {
		return err.Error()
	})
}

// sorted returns the vocabulary in a stable order for messages.
func sorted(vocabulary mapset.Set[string]) []string {
	values := vocabulary.ToSlice()
	sort.Strings(values)

	return values
}
