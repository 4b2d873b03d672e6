package service

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the identity asserted by a verified Google ID token.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleProfile, error)
}

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type idTokenVerifier struct {
	audience string
	validate validateFunc
}

// NewGoogleVerifier returns nil when clientID is empty.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	if clientID == "" {
		return nil
	}
	return &idTokenVerifier{audience: clientID, validate: idtoken.Validate}
}

func (v *idTokenVerifier) Verify(ctx context.Context, token string) (*GoogleProfile, error) {
	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}

	if payload.Subject == "" {
		return nil, fmt.Errorf("google id token has no subject")
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("google id token has no email")
	}
	name, _ := payload.Claims["name"].(string)

	return &GoogleProfile{Subject: payload.Subject, Email: email, Name: name}, nil
}
