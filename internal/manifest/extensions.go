package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/oshokin/winpack/internal/domain/packaging"
)

const (
	extensionsIndent = "      "
	fileTypeIndent   = "              "
	itemTypeIndent   = "            "

	defaultActivationType = "foreground"
)

// ErrUnknownTrigger is returned for a background task with an unsupported trigger tag.
var ErrUnknownTrigger = errors.New("unknown background task trigger")

// triggers maps background task tags to manifest trigger names.
//
//nolint:gochecknoglobals // Fixed platform mapping.
var triggers = map[packaging.TriggerType]string{
	packaging.TriggerTimer:            "TimeTrigger",
	packaging.TriggerSystemEvent:      "SystemTrigger",
	packaging.TriggerPushNotification: "PushNotificationTrigger",
}

// extensionRenderer accumulates fragments in emission order.
type extensionRenderer struct {
	merged     *packaging.Merged
	executable string
	fragments  []string
}

// RenderExtensions renders the <Extensions> block for the declared extensions.
// It returns an empty string when nothing is declared.
func RenderExtensions(merged *packaging.Merged) (string, error) {
	r := &extensionRenderer{
		merged:     merged,
		executable: ExecutableName(merged.DisplayName),
	}

	steps := []func(*packaging.Extensions) error{
		r.shareTarget,
		r.fileAssociations,
		r.protocolHandlers,
		r.startupTask,
		r.contextMenus,
		r.backgroundTasks,
		r.executionAliases,
		r.appServices,
		r.toastActivation,
		r.autoplayHandlers,
		r.printTaskSettings,
		r.thumbnailHandlers,
		r.previewHandlers,
	}

	for _, step := range steps {
		if err := step(&merged.Extensions); err != nil {
			return "", err
		}
	}

	if len(r.fragments) == 0 {
		return "", nil
	}

	return extensionsIndent + "<Extensions>\n" +
		strings.Join(r.fragments, "\n") + "\n" +
		extensionsIndent + "</Extensions>", nil
}

// add renders template name with values and appends the fragment.
func (r *extensionRenderer) add(name string, values map[string]string) error {
	text, err := loadTemplate(name)
	if err != nil {
		return err
	}

	if err = checkPlaceholders(name, text, values); err != nil {
		return err
	}

	r.fragments = append(r.fragments, dropBlankLines(substitute(text, values)))

	return nil
}

func (r *extensionRenderer) shareTarget(ext *packaging.Extensions) error {
	if !ext.ShareTarget {
		return nil
	}

	return r.add("share_target.xml", nil)
}

func (r *extensionRenderer) fileAssociations(ext *packaging.Extensions) error {
	for _, association := range ext.FileAssociations {
		displayName := ""
		if association.Description != "" {
			displayName = "            <uap:DisplayName>" + escape(association.Description) + "</uap:DisplayName>"
		}

		err := r.add("file_association.xml", map[string]string{
			"NAME":         escape(strings.ToLower(association.Name)),
			"DISPLAY_NAME": displayName,
			"FILE_TYPES":   fileTypes(association.Extensions),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) protocolHandlers(ext *packaging.Extensions) error {
	for _, protocol := range ext.ProtocolHandlers {
		err := r.add("protocol.xml", map[string]string{
			"NAME":         escape(strings.ToLower(protocol.Name)),
			"DISPLAY_NAME": escape(lo.Ternary(protocol.DisplayName != "", protocol.DisplayName, protocol.Name)),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) startupTask(ext *packaging.Extensions) error {
	if !ext.StartupTask.Declared {
		return nil
	}

	task := ext.StartupTask.Value

	enabled := true
	if task.Enabled != nil {
		enabled = *task.Enabled
	}

	return r.add("startup_task.xml", map[string]string{
		"EXECUTABLE":   escape(r.executable),
		"TASK_ID":      escape(lo.Ternary(task.TaskID != "", task.TaskID, stripSpaces(r.merged.DisplayName))),
		"ENABLED":      strconv.FormatBool(enabled),
		"DISPLAY_NAME": escape(lo.Ternary(task.DisplayName != "", task.DisplayName, r.merged.DisplayName)),
	})
}

func (r *extensionRenderer) contextMenus(ext *packaging.Extensions) error {
	for _, menu := range ext.ContextMenus {
		items := lo.Map(menu.FileTypes, func(fileType string, _ int) string {
			return itemTypeIndent + `<desktop5:ItemType Type="` + escape(normalizeFileType(fileType)) + `">` + "\n" +
				itemTypeIndent + `  <desktop5:Verb Id="` + escape(menu.Name) + `" Clsid="` + escape(unbraced(menu.Clsid)) + `" />` + "\n" +
				itemTypeIndent + `</desktop5:ItemType>`
		})

		if err := r.add("context_menu.xml", map[string]string{"ITEM_TYPES": strings.Join(items, "\n")}); err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) backgroundTasks(ext *packaging.Extensions) error {
	for _, task := range ext.BackgroundTasks {
		trigger, ok := triggers[task.Type]
		if !ok {
			return fmt.Errorf("%w %q for task %q", ErrUnknownTrigger, task.Type, task.Name)
		}

		err := r.add("background_task.xml", map[string]string{
			"ENTRY_POINT": escape(task.Name),
			"TRIGGER":     trigger,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) executionAliases(ext *packaging.Extensions) error {
	for _, alias := range ext.ExecutionAliases {
		err := r.add("execution_alias.xml", map[string]string{
			"EXECUTABLE": escape(r.executable),
			"ALIAS":      escape(withExeSuffix(alias.Alias)),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) appServices(ext *packaging.Extensions) error {
	for _, service := range ext.AppServices {
		if err := r.add("app_service.xml", map[string]string{"NAME": escape(service.Name)}); err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) toastActivation(ext *packaging.Extensions) error {
	if !ext.ToastActivation.Declared {
		return nil
	}

	clsid := PseudoCLSID(r.merged.Identifier + ".toast")
	activationType := ext.ToastActivation.Value.ActivationType

	return r.add("toast_activation.xml", map[string]string{
		"CLSID":           clsid,
		"CLASS_ID":        unbraced(clsid),
		"EXECUTABLE":      escape(r.executable),
		"ACTIVATION_TYPE": escape(lo.Ternary(activationType != "", activationType, defaultActivationType)),
	})
}

// autoplayHandlers emits one fragment per event type present on each handler.
func (r *extensionRenderer) autoplayHandlers(ext *packaging.Extensions) error {
	for _, handler := range ext.AutoplayHandlers {
		events := []struct {
			template string
			event    string
		}{
			{"autoplay_content.xml", handler.ContentEvent},
			{"autoplay_device.xml", handler.DeviceEvent},
		}

		for _, event := range events {
			if event.event == "" {
				continue
			}

			err := r.add(event.template, map[string]string{
				"VERB":                escape(handler.Verb),
				"ACTION_DISPLAY_NAME": escape(handler.ActionDisplayName),
				"EVENT":               escape(event.event),
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *extensionRenderer) printTaskSettings(ext *packaging.Extensions) error {
	if !ext.PrintTaskSettings.Declared {
		return nil
	}

	displayName := ext.PrintTaskSettings.Value.DisplayName

	return r.add("print_task_settings.xml", map[string]string{
		"DISPLAY_NAME": escape(lo.Ternary(displayName != "", displayName, r.merged.DisplayName)),
	})
}

func (r *extensionRenderer) thumbnailHandlers(ext *packaging.Extensions) error {
	for _, handler := range ext.ThumbnailHandlers {
		err := r.add("thumbnail_handler.xml", map[string]string{
			"NAME":       escape(handlerName("thumbnail", handler.Clsid)),
			"CLSID":      escape(unbraced(handler.Clsid)),
			"FILE_TYPES": fileTypes(handler.FileTypes),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *extensionRenderer) previewHandlers(ext *packaging.Extensions) error {
	for _, handler := range ext.PreviewHandlers {
		err := r.add("preview_handler.xml", map[string]string{
			"NAME":       escape(handlerName("preview", handler.Clsid)),
			"CLSID":      escape(unbraced(handler.Clsid)),
			"FILE_TYPES": fileTypes(handler.FileTypes),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// fileTypes renders one <uap:FileType> element per extension.
func fileTypes(extensions []string) string {
	elements := lo.Map(extensions, func(extension string, _ int) string {
		return fileTypeIndent + "<uap:FileType>" + escape(normalizeFileType(extension)) + "</uap:FileType>"
	})

	return strings.Join(elements, "\n")
}

// normalizeFileType lower-cases an extension and adds the leading dot. The "*" wildcard is kept as is.
func normalizeFileType(fileType string) string {
	fileType = strings.TrimSpace(fileType)
	if fileType == "*" {
		return fileType
	}

	if !strings.HasPrefix(fileType, ".") {
		fileType = "." + fileType
	}

	return strings.ToLower(fileType)
}

// withExeSuffix appends ".exe" unless alias already ends with it.
func withExeSuffix(alias string) string {
	if strings.HasSuffix(strings.ToLower(alias), ".exe") {
		return alias
	}

	return alias + ".exe"
}

// stripSpaces removes every whitespace character from value.
func stripSpaces(value string) string {
	return strings.Join(strings.Fields(value), "")
}

// ExecutableName derives the application executable from its display name.
func ExecutableName(displayName string) string {
	return stripSpaces(displayName) + ".exe"
}
