package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

const (
	msgFillAllFields     = "Please fill in all fields"
	msgPasswordsMismatch = "Passwords do not match"
	msgPasswordTooShort  = "Password must be at least 6 characters"
	msgInvalidEmail      = "Please enter a valid email address"
	msgLoginFailed       = "Invalid email or password"
	msgSignupSucceeded   = "Account created successfully!"
	msgSignupFailed      = "Failed to create account. Please try again."
)

type AuthOptions struct {
	Notifier Notifier
	Logger   *logging.Logger
}

// AuthService logs users in and out and exposes the current identity.
type AuthService struct {
	users     user.Repository
	sessions  user.SessionStore
	validator *validator.Validate
	notifier  Notifier
	logger    *logging.Logger
}

func NewAuthService(users user.Repository, sessions user.SessionStore, opts AuthOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		validator: validator.New(),
		notifier:  notifierOrNop(opts.Notifier),
		logger:    opts.Logger,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	credentials := user.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate(ctx, credentials); err != nil {
		s.notifier.Notify(NoticeError, UserMessage(err, msgFillAllFields))
		return user.Session{}, err
	}

	session, err := s.users.Login(ctx, credentials)
	if err != nil {
		s.notifier.Notify(NoticeError, UserMessage(err, msgLoginFailed))
		return user.Session{}, fmt.Errorf("login: %w", err)
	}
	if err := s.save(session); err != nil {
		return user.Session{}, err
	}

	s.logger.InfoContext(ctx, "logged in", "user_id", session.User.ID)
	return session, nil
}

func (s *AuthService) Signup(ctx context.Context, input user.SignupInput) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := s.validate(ctx, input); err != nil {
		s.notifier.Notify(NoticeError, UserMessage(err, msgFillAllFields))
		return user.Session{}, err
	}

	session, err := s.users.Signup(ctx, input)
	if err != nil {
		s.notifier.Notify(NoticeError, UserMessage(err, msgSignupFailed))
		return user.Session{}, fmt.Errorf("signup: %w", err)
	}
	if err := s.save(session); err != nil {
		return user.Session{}, err
	}

	s.notifier.Notify(NoticeSuccess, msgSignupSucceeded)
	return session, nil
}

func (s *AuthService) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user. ok is false without a token.
func (s *AuthService) CurrentUser() (user.User, bool) {
	if strings.TrimSpace(s.sessions.Token()) == "" {
		return user.User{}, false
	}
	return s.sessions.User()
}

func (s *AuthService) Stats(ctx context.Context) (user.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Stats")
	defer span.End()

	stats, err := s.users.GetStats(ctx)
	if err != nil {
		return user.Stats{}, fmt.Errorf("get user stats: %w", err)
	}
	return stats, nil
}

func (s *AuthService) GlobalStats(ctx context.Context) (user.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GlobalStats")
	defer span.End()

	stats, err := s.users.GetGlobalStats(ctx)
	if err != nil {
		return user.Stats{}, fmt.Errorf("get global stats: %w", err)
	}
	return stats, nil
}

func (s *AuthService) save(session user.Session) error {
	if !session.Valid() {
		return fmt.Errorf("%w: auth response carried no token", ErrServer)
	}
	if err := s.sessions.Save(session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// validate maps struct tag failures to one form message. Missing fields win
// over a password mismatch, which wins over a short password.
func (s *AuthService) validate(ctx context.Context, payload any) error {
	err := s.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tags := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := tags[fe.Tag()]; !seen {
			tags[fe.Tag()] = fe.Field()
		}
	}

	for _, rule := range []struct {
		tag     string
		message string
	}{
		{tag: "required", message: msgFillAllFields},
		{tag: "eqfield", message: msgPasswordsMismatch},
		{tag: "min", message: msgPasswordTooShort},
		{tag: "email", message: msgInvalidEmail},
	} {
		if field, ok := tags[rule.tag]; ok {
			return &ValidationError{Field: field, Message: rule.message}
		}
	}
	return &ValidationError{Message: msgFillAllFields}
}
