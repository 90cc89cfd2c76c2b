package model

// TokenManager generates and validates caller access tokens.
type TokenManager interface {
	GenerateAccessToken(caller Caller) (string, error)
	ParseAccessToken(token string) (Caller, error)
}
