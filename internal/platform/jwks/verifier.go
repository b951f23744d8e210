// Package jwks verifies bearer tokens against the identity provider's
// published JSON Web Key Set.
package jwks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	keyfunc "github.com/MicahParks/keyfunc/v3"
	"github.com/MicahParks/jwkset"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sethvargo/go-retry"
)

// Verification failures, surfaced as 403-equivalents at the transport layer.
// Callers match on these with errors.Is instead of inspecting messages.
var (
	// ErrUnknownKey indicates the token's kid is absent from the key set.
	ErrUnknownKey = errors.New("jwk public key not found")
	// ErrInvalidSignature indicates the signature does not match the located key.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrTokenExpired indicates the exp claim has passed.
	ErrTokenExpired = errors.New("token is expired")
	// ErrInvalidToken covers malformed tokens and any other verification failure.
	ErrInvalidToken = errors.New("token is invalid")
	// ErrMissingSubject indicates a verified token without a sub claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims is the decoded claim set of a verified token.
type Claims struct {
	jwt.RegisteredClaims
}

const (
	initialFetchRetries = 5
	initialFetchBackoff = 500 * time.Millisecond
)

// Verifier verifies compact JWS tokens. The key set is fetched once at
// construction and refreshed in the background; a lookup miss triggers a
// rate-limited refetch, so key rotation does not require a restart. The
// refreshed set replaces the cached one wholesale, so concurrent
// verifications keep reading the previous snapshot.
type Verifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewVerifier fetches the key set from jwksURL and returns a ready Verifier.
// Transient fetch failures are retried with bounded exponential backoff;
// authenticated routes cannot be served until the first fetch succeeds.
// ctx bounds both the initial fetch and the background refresh lifetime.
func NewVerifier(ctx context.Context, jwksURL string) (*Verifier, error) {
	if jwksURL == "" {
		return nil, errors.New("jwks url is required")
	}

	var kf keyfunc.Keyfunc
	backoff := retry.WithMaxRetries(initialFetchRetries, retry.NewExponential(initialFetchBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		kf, err = keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
		if err != nil {
			slog.Warn("JWKS fetch failed, retrying", "url", jwksURL, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks from %s: %w", jwksURL, err)
	}

	return &Verifier{
		keyfunc: kf.Keyfunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify checks the token's signature against the cached key set and its exp
// claim against the current time. Only a token passing every check yields
// Claims. Verification itself performs no I/O; a kid miss may trigger a
// key set refetch inside the key lookup.
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.keyfunc); err != nil {
		switch {
		case errors.Is(err, jwkset.ErrKeyNotFound):
			return nil, ErrUnknownKey
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
