package auth

import "context"

// TokenRepository persists issued refresh tokens so revocation survives
// process restarts. Implementations store a hash of the token, never the
// token itself.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	// IsRefreshTokenRevoked reports true for revoked, expired and unknown
	// tokens; only a live token we issued may be refreshed.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
