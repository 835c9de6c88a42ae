package model

// TokenManager generates and validates bearer tokens carrying the session
// email.
type TokenManager interface {
	Generate(email string) (string, error)
	Parse(token string) (string, error)
}
