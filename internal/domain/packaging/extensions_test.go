package packaging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestToggle_Unmarshal verifies the boolean-or-record forms of toggle fields.
func TestToggle_Unmarshal(t *testing.T) {
	t.Parallel()

	var ext Extensions

	raw := `{
		"startupTask": true,
		"toastActivation": {"activationType": "background"},
		"printTaskSettings": false
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &ext))

	require.True(t, ext.StartupTask.Declared)
	require.Equal(t, StartupTask{}, ext.StartupTask.Value)

	require.True(t, ext.ToastActivation.Declared)
	require.Equal(t, "background", ext.ToastActivation.Value.ActivationType)

	require.False(t, ext.PrintTaskSettings.Declared)
}

// TestToggle_Absent keeps undeclared toggles off.
func TestToggle_Absent(t *testing.T) {
	t.Parallel()

	var ext Extensions
	require.NoError(t, json.Unmarshal([]byte(`{"startupTask": null}`), &ext))
	require.False(t, ext.StartupTask.Declared)
	require.False(t, ext.ToastActivation.Declared)
}

// TestToggle_Invalid rejects values that are neither boolean nor object.
func TestToggle_Invalid(t *testing.T) {
	t.Parallel()

	var ext Extensions
	require.Error(t, json.Unmarshal([]byte(`{"startupTask": 42}`), &ext))
}

// TestKinds checks kind helpers against the emission list.
func TestKinds(t *testing.T) {
	t.Parallel()

	require.Len(t, Kinds, 13)

	for _, kind := range Kinds {
		require.True(t, IsKnownKind(kind))
	}

	require.False(t, IsKnownKind("widgets"))
	require.False(t, IsListKind(KindToastActivation))
	require.True(t, IsListKind(KindThumbnailHandlers))
}
