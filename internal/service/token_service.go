package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/identity"
)

const (
	// LocalKeyID tags tokens signed by this service.
	LocalKeyID = "memories-local-v1"
	// Untagged tokens shorter than this are treated as locally signed.
	// Google ID tokens are well above it.
	legacyLocalTokenMaxLen = 500
	tokenLifetime          = time.Hour
)

type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

type localClaims struct {
	Email string `json:"email"`
	ID    string `json:"id"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	google GoogleVerifier
	users  UserService
	now    func() time.Time
}

// NewTokenService returns a token service signing with secret. google may be
// nil, in which case external tokens are rejected.
func NewTokenService(secret string, google GoogleVerifier, users UserService) TokenService {
	return &tokenService{
		secret: []byte(secret),
		google: google,
		users:  users,
		now:    time.Now,
	}
}

func (s *tokenService) Issue(userID, email string) (string, error) {
	now := s.now()
	claims := localClaims{
		Email: email,
		ID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = LocalKeyID

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.Internal("Failed to sign token", err)
	}

	return signed, nil
}

func (s *tokenService) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	if isLocalToken(token) {
		return s.verifyLocal(token)
	}
	return s.verifyExternal(ctx, token)
}

func (s *tokenService) verifyLocal(token string) (*identity.Identity, error) {
	claims := &localClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		logrus.WithError(err).Debug("Local token rejected")
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	if claims.ID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	return &identity.Identity{UserID: claims.ID, Email: claims.Email}, nil
}

func (s *tokenService) verifyExternal(ctx context.Context, token string) (*identity.Identity, error) {
	if s.google == nil {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	profile, err := s.google.Verify(ctx, token)
	if err != nil {
		logrus.WithError(err).Debug("Google token rejected")
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	user, err := s.users.FindOrCreateGoogleUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	return &identity.Identity{UserID: user.UserID, Email: user.Email, Name: user.Name}, nil
}

func isLocalToken(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if kid, _ := parsed.Header["kid"].(string); kid == LocalKeyID {
			return true
		}
	}
	return len(token) < legacyLocalTokenMaxLen
}
