package finalpoint

import (
	"context"
	"net/http"

	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
)

// GetNotificationPreferences reports false when the account has no stored
// preferences yet.
func (c *Client) GetNotificationPreferences(ctx context.Context) (notification.Preferences, bool, error) {
	var prefs notification.Preferences
	found, err := c.getOptional(ctx, "/notifications/preferences", nil, &prefs)
	if err != nil || !found {
		return notification.Preferences{}, false, err
	}
	return prefs, true, nil
}

func (c *Client) UpdateNotificationPreferences(ctx context.Context, prefs notification.Preferences) error {
	_, err := c.do(ctx, http.MethodPut, "/notifications/preferences", nil, prefs, nil)
	return err
}

func (c *Client) SendTestNotification(ctx context.Context, channel notification.Channel) error {
	_, err := c.do(ctx, http.MethodPost, "/notifications/test", nil, notification.TestRequest{Type: channel}, nil)
	return err
}
