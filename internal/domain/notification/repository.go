package notification

import "context"

type Repository interface {
	GetPreferences(ctx context.Context) (Preferences, bool, error)
	UpdatePreferences(ctx context.Context, prefs Preferences) error
	SendTest(ctx context.Context, channel Channel) error
}
