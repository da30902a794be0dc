package models

// User is the identity returned by the records service.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Credentials is the login/register payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the session exchange result: a bearer token plus the
// resolved identity, so no follow-up identity fetch is needed.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
