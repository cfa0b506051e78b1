package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"standup-relay/internal/observability"

	"github.com/golang-jwt/jwt/v5"
)

const linkIssuer = "standup-relay"

var (
	ErrMissingToken    = errors.New("missing call link token")
	ErrExpiredToken    = errors.New("call link expired")
	ErrInvalidJWTToken = errors.New("invalid call link token")
	ErrTokenMismatch   = errors.New("call link issued for another user")
	ErrFailedSignLink  = errors.New("failed to sign call link")
)

// LinkClaims are carried by a signed call link
type LinkClaims struct {
	jwt.RegisteredClaims
}

// LinkSigner issues and checks the tokens appended to /call links. With an
// empty secret it is disabled and every link is accepted unsigned.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *observability.Logger
}

func NewLinkSigner(secret string, ttl time.Duration, now func() time.Time, logger *observability.Logger) *LinkSigner {
	return &LinkSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		logger: logger,
	}
}

// Enabled reports whether links are signed and verified
func (s *LinkSigner) Enabled() bool {
	return len(s.secret) > 0
}

// Sign returns an HS256 token bound to userID.
func (s *LinkSigner) Sign(ctx context.Context, userID string) (string, error) {
	issuedAt := s.now()
	claims := LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    linkIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error(ctx, "failed to sign call link", err)
		return "", ErrFailedSignLink
	}
	return tokenString, nil
}

// Verify checks that token is valid and was issued for userID.
func (s *LinkSigner) Verify(ctx context.Context, token, userID string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return ErrMissingToken
	}

	var claims LinkClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(linkIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn(ctx, "call link expired")
			return ErrExpiredToken
		}
		s.logger.Error(ctx, "failed to parse call link", err)
		return ErrInvalidJWTToken
	}
	if !t.Valid {
		return ErrInvalidJWTToken
	}
	if claims.Subject != userID {
		s.logger.Warn(ctx, "call link subject mismatch",
			observability.Field{Key: "token_subject", Value: claims.Subject},
		)
		return ErrTokenMismatch
	}
	return nil
}
