package model

// SessionSigner issues and verifies the token attached to a persisted session.
type SessionSigner interface {
	SignSession(session Session) (string, error)
	// VerifySession returns the identity the token was signed for. Token is
	// left empty.
	VerifySession(token string) (Session, error)
}
