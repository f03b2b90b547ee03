// Package token validates the HS256 bearer tokens issued by the external
// auth service. Issuance lives there; this service only needs the admin
// identity carried in the claims.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"backoffice/internal/platform/middleware"
	dErrors "backoffice/pkg/domain-errors"
)

// Claims are the JWT claims for admin access tokens.
type Claims struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles JWT validation (and creation, used by tests and tooling).
type Service struct {
	signingKey []byte
}

func NewService(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey)}
}

// GenerateAccessToken mints a token. Kept for test fixtures and local
// tooling; production tokens come from the auth service with the same key.
func (s *Service) GenerateAccessToken(adminID uuid.UUID, name, email string, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AdminID: adminID.String(),
		Name:    name,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(s.signingKey)
}

// ValidateToken parses and validates a token, returning the middleware
// claims shape consumed by RequireAuth.
func (s *Service) ValidateToken(tokenString string) (*middleware.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid admin id in token")
	}

	return &middleware.Claims{
		AdminID: adminID,
		Name:    claims.Name,
		Email:   claims.Email,
	}, nil
}
