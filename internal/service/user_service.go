package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/models"
	"memories/internal/repository"
)

const unknownAuthor = "Unknown"

type UserService interface {
	// DisplayName resolves the name stored on new content: the caller's
	// profile name, then fallback, then "Unknown".
	DisplayName(ctx context.Context, userID, fallback string) string
	// FindOrCreateGoogleUser returns the account for a verified Google
	// identity, linking or creating it as needed.
	FindOrCreateGoogleUser(ctx context.Context, profile *GoogleProfile) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) DisplayName(ctx context.Context, userID, fallback string) string {
	if userID != "" {
		user, err := s.userRepo.GetUserByID(ctx, userID)
		switch {
		case err == nil && user.Name != "":
			return user.Name
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			logrus.WithError(err).WithField("user_id", userID).Warn("Failed to load profile name")
		}
	}

	if fallback != "" {
		return fallback
	}
	return unknownAuthor
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, profile *GoogleProfile) (*models.User, error) {
	user, err := s.userRepo.GetUserByGoogleIDOrEmail(ctx, profile.Subject, profile.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("Failed to look up user", err)
	}

	if user == nil {
		return s.createGoogleUser(ctx, profile)
	}

	if !user.HasGoogleID() {
		if err := s.userRepo.LinkGoogleID(ctx, user.UserID, profile.Subject); err != nil {
			return nil, apperror.Internal("Failed to link Google account", err)
		}
		googleID := profile.Subject
		user.GoogleID = &googleID

		logrus.WithField("user_id", user.UserID).Info("Linked Google account to existing user")
	}

	return user, nil
}

func (s *userService) createGoogleUser(ctx context.Context, profile *GoogleProfile) (*models.User, error) {
	googleID := profile.Subject
	name := profile.Name
	if name == "" {
		name = profile.Email
	}

	user := &models.User{
		Email:    profile.Email,
		Name:     name,
		GoogleID: &googleID,
	}

	err := s.userRepo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race with a concurrent first sign-in.
		existing, getErr := s.userRepo.GetUserByGoogleIDOrEmail(ctx, profile.Subject, profile.Email)
		if getErr != nil {
			return nil, apperror.Internal("Failed to look up user", getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, apperror.Internal("Failed to create user", err)
	}

	logrus.WithField("user_id", user.UserID).Info("Created user from Google sign-in")
	return user, nil
}
