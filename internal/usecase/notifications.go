package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

const (
	msgPrefsLoadFailed   = "Failed to load notification preferences"
	msgPrefsSaved        = "Notification preferences updated successfully!"
	msgPrefsRejected     = "Failed to update preferences"
	msgPrefsUpdateFailed = "Failed to update notification preferences"
	msgPrefsSaveFailed   = "Failed to save notification preferences"
	msgChooseChannel     = "Choose email or push"
)

type NotificationsOptions struct {
	Notifier Notifier
	Logger   *logging.Logger
}

// NotificationsService reads and writes the user's notification switches.
type NotificationsService struct {
	repo      notification.Repository
	validator *validator.Validate
	notifier  Notifier
	logger    *logging.Logger
}

func NewNotificationsService(repo notification.Repository, opts NotificationsOptions) *NotificationsService {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &NotificationsService{
		repo:      repo,
		validator: validator.New(),
		notifier:  notifierOrNop(opts.Notifier),
		logger:    opts.Logger,
	}
}

// Load returns the stored preferences, or the all-on defaults when the
// account has none or the server declines. Only a transport failure is
// reported to the user.
func (s *NotificationsService) Load(ctx context.Context) (notification.Preferences, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationsService.Load")
	defer span.End()

	prefs, found, err := s.repo.GetPreferences(ctx)
	switch {
	case err == nil && found:
		return prefs, nil
	case err == nil:
		return notification.DefaultPreferences(), nil
	case errors.Is(err, ErrUnauthorized):
		return notification.DefaultPreferences(), fmt.Errorf("get notification preferences: %w", err)
	case errors.Is(err, ErrNetwork):
		s.logger.WarnContext(ctx, "load notification preferences failed", "error", err)
		s.notifier.Notify(NoticeError, msgPrefsLoadFailed)
		return notification.DefaultPreferences(), fmt.Errorf("get notification preferences: %w", err)
	default:
		s.logger.WarnContext(ctx, "notification preferences unavailable, using defaults", "error", err)
		return notification.DefaultPreferences(), nil
	}
}

func (s *NotificationsService) Save(ctx context.Context, prefs notification.Preferences) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationsService.Save")
	defer span.End()

	err := s.repo.UpdatePreferences(ctx, prefs)
	if err == nil {
		s.notifier.Notify(NoticeSuccess, msgPrefsSaved)
		return nil
	}

	s.logger.WarnContext(ctx, "save notification preferences failed", "error", err)
	switch {
	case errors.Is(err, ErrUnauthorized):
	case errors.Is(err, ErrRejected):
		s.notifier.Notify(NoticeError, UserMessage(err, msgPrefsRejected))
	case errors.Is(err, ErrNetwork):
		s.notifier.Notify(NoticeError, msgPrefsSaveFailed)
	default:
		s.notifier.Notify(NoticeError, msgPrefsUpdateFailed)
	}
	return fmt.Errorf("update notification preferences: %w", err)
}

// Test asks the server to send a test notification on channel.
func (s *NotificationsService) Test(ctx context.Context, channel notification.Channel) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationsService.Test")
	defer span.End()

	request := notification.TestRequest{Type: channel}
	if err := s.validator.StructCtx(ctx, request); err != nil {
		verr := &ValidationError{Field: "type", Message: msgChooseChannel}
		s.notifier.Notify(NoticeError, verr.Message)
		return verr
	}

	failed := fmt.Sprintf("Failed to send test %s notification", channel)
	err := s.repo.SendTest(ctx, request.Type)
	if err == nil {
		s.notifier.Notify(NoticeSuccess, fmt.Sprintf("Test %s notification sent successfully!", channel))
		return nil
	}

	s.logger.WarnContext(ctx, "send test notification failed", "channel", channel, "error", err)
	switch {
	case errors.Is(err, ErrUnauthorized):
	case errors.Is(err, ErrRejected):
		s.notifier.Notify(NoticeError, UserMessage(err, failed))
	default:
		s.notifier.Notify(NoticeError, failed)
	}
	return fmt.Errorf("send test %s notification: %w", channel, err)
}
