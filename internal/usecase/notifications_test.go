package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	notificationmock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationsService(t *testing.T) (*NotificationsService, *notificationmock.Repository, *RecordingNotifier) {
	t.Helper()

	repo := notificationmock.NewRepository(t)
	notifier := &RecordingNotifier{}
	svc := NewNotificationsService(repo, NotificationsOptions{Notifier: notifier, Logger: logging.NewNop()})
	return svc, repo, notifier
}

func TestNotificationsService_Load(t *testing.T) {
	t.Parallel()

	stored := notification.Preferences{EmailReminders: true}
	cases := []struct {
		name       string
		prefs      notification.Preferences
		found      bool
		err        error
		want       notification.Preferences
		wantErr    bool
		wantNotice string
	}{
		{name: "stored", prefs: stored, found: true, want: stored},
		{name: "none stored", want: notification.DefaultPreferences()},
		{name: "rejected keeps defaults", err: fmt.Errorf("%w: nope", ErrRejected), want: notification.DefaultPreferences()},
		{name: "network failure", err: ErrNetwork, want: notification.DefaultPreferences(), wantErr: true, wantNotice: "Failed to load notification preferences"},
		{name: "unauthorized", err: ErrUnauthorized, want: notification.DefaultPreferences(), wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, repo, notifier := newNotificationsService(t)
			repo.On("GetPreferences", mock.Anything).Return(tc.prefs, tc.found, tc.err).Once()

			got, err := svc.Load(context.Background())
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.wantErr, err != nil, "err=%v", err)

			notices := notifier.Notices()
			if tc.wantNotice == "" {
				require.Empty(t, notices)
				return
			}
			require.Len(t, notices, 1)
			require.Equal(t, tc.wantNotice, notices[0].Message)
		})
	}
}

func TestNotificationsService_Save(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantLevel  NoticeLevel
		wantNotice string
	}{
		{name: "saved", wantLevel: NoticeSuccess, wantNotice: "Notification preferences updated successfully!"},
		{name: "rejected with message", err: serverMessageError{msg: "Preferences locked"}, wantLevel: NoticeError, wantNotice: "Failed to update notification preferences"},
		{name: "rejected envelope", err: fmt.Errorf("%w: %w", ErrRejected, serverMessageError{msg: "Preferences locked"}), wantLevel: NoticeError, wantNotice: "Preferences locked"},
		{name: "http failure", err: ErrServer, wantLevel: NoticeError, wantNotice: "Failed to update notification preferences"},
		{name: "transport", err: ErrNetwork, wantLevel: NoticeError, wantNotice: "Failed to save notification preferences"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, repo, notifier := newNotificationsService(t)
			prefs := notification.Preferences{PushReminders: true}
			repo.On("UpdatePreferences", mock.Anything, prefs).Return(tc.err).Once()

			err := svc.Save(context.Background(), prefs)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, tc.err))
			}

			notices := notifier.Notices()
			require.Len(t, notices, 1)
			require.Equal(t, tc.wantLevel, notices[0].Level)
			require.Equal(t, tc.wantNotice, notices[0].Message)
		})
	}
}

func TestNotificationsService_Test(t *testing.T) {
	t.Parallel()

	t.Run("invalid channel is not sent", func(t *testing.T) {
		t.Parallel()

		svc, _, notifier := newNotificationsService(t)
		err := svc.Test(context.Background(), notification.Channel("sms"))
		require.True(t, errors.Is(err, ErrValidation))
		require.Equal(t, "Choose email or push", notifier.Notices()[0].Message)
	})

	t.Run("sent", func(t *testing.T) {
		t.Parallel()

		svc, repo, notifier := newNotificationsService(t)
		repo.On("SendTest", mock.Anything, notification.ChannelPush).Return(nil).Once()

		require.NoError(t, svc.Test(context.Background(), notification.ChannelPush))
		require.Equal(t, "Test push notification sent successfully!", notifier.Notices()[0].Message)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		svc, repo, notifier := newNotificationsService(t)
		repo.On("SendTest", mock.Anything, notification.ChannelEmail).Return(ErrServer).Once()

		require.Error(t, svc.Test(context.Background(), notification.ChannelEmail))
		require.Equal(t, "Failed to send test email notification", notifier.Notices()[0].Message)
	})
}
