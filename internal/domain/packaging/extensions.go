package packaging

import (
	"bytes"
	"encoding/json"
)

// Extension kinds, named after their keys in the packaging document.
const (
	KindShareTarget       = "shareTarget"
	KindFileAssociations  = "fileAssociations"
	KindProtocolHandlers  = "protocolHandlers"
	KindStartupTask       = "startupTask"
	KindContextMenus      = "contextMenus"
	KindBackgroundTasks   = "backgroundTasks"
	KindExecutionAliases  = "executionAliases"
	KindAppServices       = "appServices"
	KindToastActivation   = "toastActivation"
	KindAutoplayHandlers  = "autoplayHandlers"
	KindPrintTaskSettings = "printTaskSettings"
	KindThumbnailHandlers = "thumbnailHandlers"
	KindPreviewHandlers   = "previewHandlers"
)

// Kinds lists every extension kind in manifest emission order.
//
//nolint:gochecknoglobals // Fixed platform vocabulary.
var Kinds = []string{
	KindShareTarget,
	KindFileAssociations,
	KindProtocolHandlers,
	KindStartupTask,
	KindContextMenus,
	KindBackgroundTasks,
	KindExecutionAliases,
	KindAppServices,
	KindToastActivation,
	KindAutoplayHandlers,
	KindPrintTaskSettings,
	KindThumbnailHandlers,
	KindPreviewHandlers,
}

// IsListKind reports whether the kind holds a list of records.
func IsListKind(kind string) bool {
	switch kind {
	case KindShareTarget, KindStartupTask, KindToastActivation, KindPrintTaskSettings:
		return false
	default:
		return true
	}
}

// IsKnownKind reports whether kind is one of Kinds.
func IsKnownKind(kind string) bool {
	for _, known := range Kinds {
		if known == kind {
			return true
		}
	}

	return false
}

// Extensions declares the optional platform integrations. Every field is independent.
type Extensions struct {
	ShareTarget       bool                      `json:"shareTarget,omitempty"`
	FileAssociations  []FileAssociation         `json:"fileAssociations,omitempty"`
	ProtocolHandlers  []ProtocolHandler         `json:"protocolHandlers,omitempty"`
	StartupTask       Toggle[StartupTask]       `json:"startupTask"`
	ContextMenus      []ContextMenu             `json:"contextMenus,omitempty"`
	BackgroundTasks   []BackgroundTask          `json:"backgroundTasks,omitempty"`
	ExecutionAliases  []ExecutionAlias          `json:"executionAliases,omitempty"`
	AppServices       []AppService              `json:"appServices,omitempty"`
	ToastActivation   Toggle[ToastActivation]   `json:"toastActivation"`
	AutoplayHandlers  []AutoplayHandler         `json:"autoplayHandlers,omitempty"`
	PrintTaskSettings Toggle[PrintTaskSettings] `json:"printTaskSettings"`
	ThumbnailHandlers []ThumbnailHandler        `json:"thumbnailHandlers,omitempty"`
	PreviewHandlers   []PreviewHandler          `json:"previewHandlers,omitempty"`
}

// Toggle is an extension field that accepts either a boolean or a record.
// true declares the record with defaults, false and null leave it undeclared.
type Toggle[T any] struct {
	Declared bool
	Value    T
}

// On returns a declared toggle holding value.
func On[T any](value T) Toggle[T] {
	return Toggle[T]{Declared: true, Value: value}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Toggle[T]) UnmarshalJSON(data []byte) error {
	var zero T

	switch string(bytes.TrimSpace(data)) {
	case "true":
		*t = Toggle[T]{Declared: true, Value: zero}
		return nil
	case "false", "null":
		*t = Toggle[T]{}
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*t = Toggle[T]{Declared: true, Value: value}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Toggle[T]) MarshalJSON() ([]byte, error) {
	if !t.Declared {
		return []byte("false"), nil
	}

	return json.Marshal(t.Value)
}

// FileAssociation registers the application for a set of file extensions.
type FileAssociation struct {
	Name        string   `json:"name"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description,omitempty"`
}

// ProtocolHandler registers a URI scheme.
type ProtocolHandler struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// StartupTask launches the application at user sign-in.
type StartupTask struct {
	TaskID      string `json:"taskId,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// ContextMenu adds a File Explorer context menu verb for the listed file types.
type ContextMenu struct {
	Name      string   `json:"name"`
	Clsid     string   `json:"clsid"`
	FileTypes []string `json:"fileTypes"`
}

// TriggerType is the background task trigger tag.
type TriggerType string

// Background task trigger tags.
const (
	TriggerTimer            TriggerType = "timer"
	TriggerSystemEvent      TriggerType = "systemEvent"
	TriggerPushNotification TriggerType = "pushNotification"
)

// BackgroundTask registers a background task entry point.
type BackgroundTask struct {
	Name string      `json:"name"`
	Type TriggerType `json:"type"`
}

// ExecutionAlias exposes the application on PATH under Alias.
type ExecutionAlias struct {
	Alias string `json:"alias"`
}

// AppService exposes a named app service.
type AppService struct {
	Name string `json:"name"`
}

// ToastActivation registers a COM activator for toast notifications.
type ToastActivation struct {
	// ActivationType is foreground, background or protocol.
	ActivationType string `json:"activationType,omitempty"`
}

// AutoplayHandler handles AutoPlay content and/or device events.
type AutoplayHandler struct {
	Verb              string `json:"verb"`
	ActionDisplayName string `json:"actionDisplayName"`
	ContentEvent      string `json:"contentEvent,omitempty"`
	DeviceEvent       string `json:"deviceEvent,omitempty"`
}

// PrintTaskSettings registers a print task settings UI.
type PrintTaskSettings struct {
	DisplayName string `json:"displayName,omitempty"`
}

// ThumbnailHandler registers a shell thumbnail provider.
type ThumbnailHandler struct {
	Clsid     string   `json:"clsid"`
	FileTypes []string `json:"fileTypes"`
}

// PreviewHandler registers a shell preview handler.
type PreviewHandler struct {
	Clsid     string   `json:"clsid"`
	FileTypes []string `json:"fileTypes"`
}
