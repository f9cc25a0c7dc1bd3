package user

import "strings"

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput carries the signup form. Confirm never leaves the client.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"-" validate:"required,eqfield=Password"`
}

// Session is the authenticated identity a client holds between runs.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Stats summarises a user's picks across leagues.
type Stats struct {
	TotalPicks    int     `json:"totalPicks"`
	CorrectPicks  int     `json:"correctPicks"`
	TotalPoints   int     `json:"totalPoints"`
	Accuracy      float64 `json:"accuracy"`
	AveragePoints float64 `json:"averagePoints"`
}
