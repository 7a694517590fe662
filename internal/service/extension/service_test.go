package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/repository/document"
)

func newService(t *testing.T, contents string) (*Service, *document.FileRepository) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "packaging.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	repo := document.NewFileRepository(path)

	return NewService(repo), repo
}

// TestService_AddList appends list entries and sets toggles.
func TestService_AddList(t *testing.T) {
	t.Parallel()

	svc, repo := newService(t, `{"publisher": "CN=X", "extensions": {"fileAssociations": [{"name": "docs", "extensions": [".doc"]}]}}`)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, packaging.KindFileAssociations, []byte(`{"name": "text", "extensions": [".txt", ".md"]}`)))
	require.NoError(t, svc.Add(ctx, packaging.KindToastActivation, []byte(`true`)))
	require.NoError(t, svc.Add(ctx, packaging.KindExecutionAliases, []byte(`[{"alias": "a"}, {"alias": "b"}]`)))

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Summary{
		{Kind: packaging.KindFileAssociations, Entries: []string{"docs (.doc)", "text (.txt, .md)"}},
		{Kind: packaging.KindExecutionAliases, Entries: []string{"a", "b"}},
		{Kind: packaging.KindToastActivation, Entries: []string{"default"}},
	}, summaries)

	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "CN=X", doc["publisher"])
}

// TestService_AddRejectsBadEntries checks kind and shape validation.
func TestService_AddRejectsBadEntries(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, `{}`)
	ctx := context.Background()

	require.ErrorIs(t, svc.Add(ctx, "widgets", []byte(`{}`)), ErrUnknownKind)
	require.ErrorIs(t, svc.Add(ctx, packaging.KindAppServices, []byte(`"name"`)), errInvalidEntry)
	require.ErrorIs(t, svc.Add(ctx, packaging.KindStartupTask, []byte(`[1]`)), errInvalidEntry)
	require.ErrorIs(t, svc.Add(ctx, packaging.KindAppServices, []byte(`{"name": 5}`)), errInvalidEntry)
	require.ErrorIs(t, svc.Add(ctx, packaging.KindAppServices, []byte(`{`)), errInvalidEntry)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, summaries)
}

// TestService_Remove deletes a whole kind and keeps the rest.
func TestService_Remove(t *testing.T) {
	t.Parallel()

	svc, repo := newService(t, `{"extensions": {"shareTarget": true, "appServices": [{"name": "svc"}]}}`)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, packaging.KindShareTarget))
	require.ErrorIs(t, svc.Remove(ctx, packaging.KindShareTarget), ErrNotDeclared)
	require.ErrorIs(t, svc.Remove(ctx, "widgets"), ErrUnknownKind)

	doc, err := repo.Load(ctx)
	require.NoError(t, err)

	section, ok := doc["extensions"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, section, packaging.KindShareTarget)
	require.Contains(t, section, packaging.KindAppServices)
}

// TestService_MissingDocument surfaces the repository error.
func TestService_MissingDocument(t *testing.T) {
	t.Parallel()

	svc := NewService(document.NewFileRepository(filepath.Join(t.TempDir(), "absent.json")))

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, document.ErrNotFound)
}
