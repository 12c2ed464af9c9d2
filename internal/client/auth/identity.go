package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the signed-in user. StoragePartitionID names the user's
// private prefix in the blob store.
type Identity struct {
	UserID             string
	StoragePartitionID string
}

// Claims are the ID token claims the client reads.
type Claims struct {
	jwt.RegisteredClaims
	CustomIdentityID string `json:"custom:identity_id,omitempty"`
	IdentityID       string `json:"identity_id,omitempty"`
}

// ParseIdentity extracts the identity and expiry from an unverified token.
// The storage partition falls back to the subject when the token carries
// no identity id claim. expires is zero when the token has no exp claim.
func ParseIdentity(token string) (id Identity, expires time.Time, err error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, time.Time{}, fmt.Errorf("%w: malformed token: %w", common.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return Identity{}, time.Time{}, fmt.Errorf("%w: token has no subject", common.ErrUnauthorized)
	}

	id.UserID = claims.Subject
	switch {
	case claims.CustomIdentityID != "":
		id.StoragePartitionID = claims.CustomIdentityID
	case claims.IdentityID != "":
		id.StoragePartitionID = claims.IdentityID
	default:
		id.StoragePartitionID = claims.Subject
	}

	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return id, expires, nil
}
