package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memories/internal/apperror"
	"memories/internal/models"
	"memories/internal/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// googleLikeToken is long enough to be routed to the Google verifier.
var googleLikeToken = "eyJhbGciOiJSUzI1NiJ9." + strings.Repeat("a", 600) + ".sig"

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := NewTokenService(testSecret, nil, nil)

	token, err := tokens.Issue("user-1", "jane@example.com")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, LocalKeyID, parsed.Header["kid"])

	id, err := tokens.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "jane@example.com", id.Email)
}

func TestTokenService_VerifyRejects(t *testing.T) {
	issued := NewTokenService(testSecret, nil, nil)
	valid, err := issued.Issue("user-1", "jane@example.com")
	require.NoError(t, err)

	expiredSvc := NewTokenService(testSecret, nil, nil).(*tokenService)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue("user-1", "jane@example.com")
	require.NoError(t, err)

	otherSecret, err := NewTokenService("ffffffffffffffffffffffffffffffff", nil, nil).Issue("user-1", "jane@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "tampered", token: valid[:len(valid)-2] + "xx"},
		{name: "external without google configured", token: googleLikeToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := issued.Verify(context.Background(), tc.token)

			assert.Nil(t, id)
			assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
		})
	}
}

func TestTokenService_LegacyUntaggedToken(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"id":    "user-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	legacy, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.Less(t, len(legacy), legacyLocalTokenMaxLen)

	id, err := NewTokenService(testSecret, nil, nil).Verify(context.Background(), legacy)

	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
}

func TestIsLocalToken(t *testing.T) {
	assert.True(t, isLocalToken("short"))
	assert.False(t, isLocalToken(googleLikeToken))
}

func TestTokenService_VerifyExternal(t *testing.T) {
	profile := &GoogleProfile{Subject: "g-1", Email: "jane@example.com", Name: "Jane Doe"}

	t.Run("creates user on first sight", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		google := new(MockGoogleVerifier)
		google.On("Verify", mock.Anything, googleLikeToken).Return(profile, nil)
		userRepo.On("GetUserByGoogleIDOrEmail", mock.Anything, "g-1", "jane@example.com").
			Return(nil, repository.ErrNotFound)
		userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "jane@example.com" && u.HasGoogleID() && u.PasswordHash == ""
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).UserID = "user-new"
		}).Return(nil)

		tokens := NewTokenService(testSecret, google, NewUserService(userRepo))
		id, err := tokens.Verify(context.Background(), googleLikeToken)

		require.NoError(t, err)
		assert.Equal(t, "user-new", id.UserID)
		assert.Equal(t, "Jane Doe", id.Name)
		userRepo.AssertExpectations(t)
	})

	t.Run("links existing password user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		google := new(MockGoogleVerifier)
		google.On("Verify", mock.Anything, googleLikeToken).Return(profile, nil)
		userRepo.On("GetUserByGoogleIDOrEmail", mock.Anything, "g-1", "jane@example.com").
			Return(&models.User{UserID: "user-1", Email: "jane@example.com", PasswordHash: "hash"}, nil)
		userRepo.On("LinkGoogleID", mock.Anything, "user-1", "g-1").Return(nil)

		tokens := NewTokenService(testSecret, google, NewUserService(userRepo))
		id, err := tokens.Verify(context.Background(), googleLikeToken)

		require.NoError(t, err)
		assert.Equal(t, "user-1", id.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("provider rejects token", func(t *testing.T) {
		google := new(MockGoogleVerifier)
		google.On("Verify", mock.Anything, googleLikeToken).Return(nil, errors.New("bad audience"))

		tokens := NewTokenService(testSecret, google, NewUserService(new(MockUserRepository)))
		_, err := tokens.Verify(context.Background(), googleLikeToken)

		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})
}
