package extension

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/jsonc"

	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/logger"
	"github.com/oshokin/winpack/internal/merge"
	"github.com/oshokin/winpack/internal/repository/document"
)

const extensionsKey = "extensions"

var (
	// ErrUnknownKind is returned for a kind outside packaging.Kinds.
	ErrUnknownKind = errors.New("unknown extension kind")
	// ErrNotDeclared is returned when removing a kind that is not present.
	ErrNotDeclared = errors.New("extension kind is not declared")
	// errInvalidEntry is returned when an entry does not fit the kind.
	errInvalidEntry = errors.New("invalid extension entry")
)

// Summary describes the declared entries of one extension kind.
type Summary struct {
	Kind    string
	Entries []string
}

// Service edits the packaging document through a repository.
type Service struct {
	repo document.Repository
}

// NewService creates a Service backed by repo.
func NewService(repo document.Repository) *Service {
	return &Service{repo: repo}
}

// List returns a summary for each declared kind in manifest emission order.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	ext, err := decodeExtensions(doc)
	if err != nil {
		return nil, err
	}

	return summarize(ext), nil
}

// Add appends entry to a list kind, or sets a toggle kind to entry.
// For list kinds entry may be a single object or an array of objects.
func (s *Service) Add(ctx context.Context, kind string, entry []byte) error {
	if !packaging.IsKnownKind(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var value any
	if err := json.Unmarshal(jsonc.ToJSON(entry), &value); err != nil {
		return fmt.Errorf("%w: %w", errInvalidEntry, err)
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	next, err := nextValue(doc, kind, value)
	if err != nil {
		return err
	}

	updated := merge.Documents(doc, map[string]any{
		extensionsKey: map[string]any{kind: next},
	})

	// Reject entries that do not decode into the kind's record type.
	if _, err = decodeExtensions(updated); err != nil {
		return fmt.Errorf("%w: %w", errInvalidEntry, err)
	}

	if err = s.repo.Save(ctx, updated); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Extension added", "kind", kind, "path", s.repo.Path())

	return nil
}

// Remove deletes every entry of kind.
func (s *Service) Remove(ctx context.Context, kind string) error {
	if !packaging.IsKnownKind(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	section, _ := doc[extensionsKey].(map[string]any)
	if _, ok := section[kind]; !ok {
		return fmt.Errorf("%w: %q", ErrNotDeclared, kind)
	}

	updated := merge.Documents(doc, map[string]any{
		extensionsKey: map[string]any{kind: nil},
	})

	if err = s.repo.Save(ctx, updated); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Extension removed", "kind", kind, "path", s.repo.Path())

	return nil
}

// nextValue computes the new value of kind after adding value.
func nextValue(doc map[string]any, kind string, value any) (any, error) {
	if !packaging.IsListKind(kind) {
		switch value.(type) {
		case bool, map[string]any:
			return value, nil
		default:
			return nil, fmt.Errorf("%w: %s expects true, false or an object", errInvalidEntry, kind)
		}
	}

	var added []any

	switch typed := value.(type) {
	case map[string]any:
		added = []any{typed}
	case []any:
		added = typed
	default:
		return nil, fmt.Errorf("%w: %s expects an object or an array of objects", errInvalidEntry, kind)
	}

	section, _ := doc[extensionsKey].(map[string]any)
	existing, _ := section[kind].([]any)

	// Merge replaces arrays wholesale, so the patch carries the full list.
	return append(append([]any(nil), existing...), added...), nil
}

// decodeExtensions decodes the extensions section of doc.
func decodeExtensions(doc map[string]any) (*packaging.Extensions, error) {
	var ext packaging.Extensions

	section, ok := doc[extensionsKey]
	if !ok || section == nil {
		return &ext, nil
	}

	raw, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("encode extensions: %w", err)
	}

	if err = json.Unmarshal(raw, &ext); err != nil {
		return nil, fmt.Errorf("decode extensions: %w", err)
	}

	return &ext, nil
}

// summarize describes the declared kinds of ext.
func summarize(ext *packaging.Extensions) []Summary {
	var summaries []Summary

	add := func(kind string, entries []string) {
		if len(entries) > 0 {
			summaries = append(summaries, Summary{Kind: kind, Entries: entries})
		}
	}

	if ext.ShareTarget {
		add(packaging.KindShareTarget, []string{"enabled"})
	}

	add(packaging.KindFileAssociations, lo.Map(ext.FileAssociations, func(a packaging.FileAssociation, _ int) string {
		return a.Name + " (" + strings.Join(a.Extensions, ", ") + ")"
	}))
	add(packaging.KindProtocolHandlers, lo.Map(ext.ProtocolHandlers, func(p packaging.ProtocolHandler, _ int) string {
		return p.Name + "://"
	}))

	if ext.StartupTask.Declared {
		add(packaging.KindStartupTask, []string{orDefault(ext.StartupTask.Value.TaskID)})
	}

	add(packaging.KindContextMenus, lo.Map(ext.ContextMenus, func(m packaging.ContextMenu, _ int) string {
		return m.Name + " (" + strings.Join(m.FileTypes, ", ") + ")"
	}))
	add(packaging.KindBackgroundTasks, lo.Map(ext.BackgroundTasks, func(b packaging.BackgroundTask, _ int) string {
		return b.Name + " [" + string(b.Type) + "]"
	}))
	add(packaging.KindExecutionAliases, lo.Map(ext.ExecutionAliases, func(a packaging.ExecutionAlias, _ int) string {
		return a.Alias
	}))
	add(packaging.KindAppServices, lo.Map(ext.AppServices, func(a packaging.AppService, _ int) string {
		return a.Name
	}))

	if ext.ToastActivation.Declared {
		add(packaging.KindToastActivation, []string{orDefault(ext.ToastActivation.Value.ActivationType)})
	}

	add(packaging.KindAutoplayHandlers, lo.Map(ext.AutoplayHandlers, func(a packaging.AutoplayHandler, _ int) string {
		events := lo.Filter([]string{a.ContentEvent, a.DeviceEvent}, func(event string, _ int) bool {
			return event != ""
		})

		return a.Verb + " (" + strings.Join(events, ", ") + ")"
	}))

	if ext.PrintTaskSettings.Declared {
		add(packaging.KindPrintTaskSettings, []string{orDefault(ext.PrintTaskSettings.Value.DisplayName)})
	}

	add(packaging.KindThumbnailHandlers, lo.Map(ext.ThumbnailHandlers, func(h packaging.ThumbnailHandler, _ int) string {
		return h.Clsid + " (" + strings.Join(h.FileTypes, ", ") + ")"
	}))
	add(packaging.KindPreviewHandlers, lo.Map(ext.PreviewHandlers, func(h packaging.PreviewHandler, _ int) string {
		return h.Clsid + " (" + strings.Join(h.FileTypes, ", ") + ")"
	}))

	return summaries
}

func orDefault(value string) string {
	return lo.Ternary(value != "", value, "default")
}
