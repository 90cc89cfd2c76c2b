package model

// Caller is the identity the authorization gate resolved for a request.
type Caller struct {
	ID            string
	Email         string
	EmailVerified bool
}
