package notification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreferences_Set(t *testing.T) {
	t.Parallel()

	prefs := DefaultPreferences()
	require.NoError(t, prefs.Set("pushReminders=false"))
	require.NoError(t, prefs.Set(" emailScoreUpdates = 0 "))
	require.Equal(t, Preferences{EmailReminders: true, PushScoreUpdates: true}, prefs)

	require.Error(t, prefs.Set("pushReminders"))
	require.Error(t, prefs.Set("smsReminders=true"))
	require.Error(t, prefs.Set("pushReminders=maybe"))
}

func TestKeys_Sorted(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"emailReminders", "emailScoreUpdates", "pushReminders", "pushScoreUpdates"}, Keys())
}
