package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dErrors "backoffice/pkg/domain-errors"
)

type TokenSuite struct {
	suite.Suite
	svc *Service
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenSuite))
}

func (s *TokenSuite) SetupTest() {
	s.svc = NewService("test-signing-key")
}

func (s *TokenSuite) TestRoundTrip() {
	adminID := uuid.New()
	tok, err := s.svc.GenerateAccessToken(adminID, "Jordan", "jordan@example.com", time.Hour)
	s.Require().NoError(err)

	claims, err := s.svc.ValidateToken(tok)
	s.Require().NoError(err)
	s.Equal(adminID, claims.AdminID)
	s.Equal("Jordan", claims.Name)
	s.Equal("jordan@example.com", claims.Email)
}

func (s *TokenSuite) TestExpiredToken() {
	tok, err := s.svc.GenerateAccessToken(uuid.New(), "Jordan", "jordan@example.com", -time.Minute)
	s.Require().NoError(err)

	_, err = s.svc.ValidateToken(tok)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	s.Contains(err.Error(), "expired")
}

func (s *TokenSuite) TestWrongKey() {
	other := NewService("a-different-key")
	tok, err := other.GenerateAccessToken(uuid.New(), "Jordan", "jordan@example.com", time.Hour)
	s.Require().NoError(err)

	_, err = s.svc.ValidateToken(tok)
	s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
}

func (s *TokenSuite) TestGarbageToken() {
	_, err := s.svc.ValidateToken("not.a.token")
	s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
}

func (s *TokenSuite) TestNonUUIDAdminID() {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AdminID: "not-a-uuid",
		Name:    "Jordan",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := raw.SignedString([]byte("test-signing-key"))
	s.Require().NoError(err)

	_, err = s.svc.ValidateToken(tok)
	s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
}
