package user

import "context"

// Repository is the account surface of the API.
type Repository interface {
	Signup(ctx context.Context, input SignupInput) (Session, error)
	Login(ctx context.Context, credentials Credentials) (Session, error)
	GetStats(ctx context.Context) (Stats, error)
	GetGlobalStats(ctx context.Context) (Stats, error)
}

// SessionStore holds the current session. Implementations must be safe for
// concurrent use; the API client reads the token on every request.
type SessionStore interface {
	Token() string
	User() (User, bool)
	Save(session Session) error
	Clear() error
}
