package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"memories/internal/apperror"
	"memories/internal/metrics"
	"memories/internal/models"
	"memories/internal/repository"
)

const bcryptCost = 12

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SigninInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupInput struct {
	Email     string `json:"email" validate:"required,emailshape"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// AuthResult is returned by every sign-in flow.
type AuthResult struct {
	User  *models.User `json:"result"`
	Token string       `json:"token"`
}

type AuthService interface {
	Signin(ctx context.Context, input SigninInput) (*AuthResult, error)
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	users    UserService
	tokens   TokenService
	google   GoogleVerifier
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, users UserService, tokens TokenService, google GoogleVerifier) AuthService {
	return &authService{
		userRepo: userRepo,
		users:    users,
		tokens:   tokens,
		google:   google,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

func (s *authService) Signin(ctx context.Context, input SigninInput) (*AuthResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest("Email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.SigninFailure.WithLabelValues("unknown_user").Inc()
			return nil, apperror.NotFound("User doesn't exist")
		}
		return nil, apperror.Internal("Failed to load user", err)
	}

	if user.PasswordHash == "" {
		metrics.SigninFailure.WithLabelValues("no_password").Inc()
		return nil, apperror.BadRequest("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.SigninFailure.WithLabelValues("bad_password").Inc()
		return nil, apperror.BadRequest("Invalid credentials")
	}

	return s.issue(user)
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, signupValidationError(err)
	}

	_, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return nil, userExists()
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("Failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Email:        input.Email,
		Name:         input.FirstName + " " + input.LastName,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, userExists()
		}
		return nil, apperror.Internal("Failed to create user", err)
	}

	logrus.WithField("user_id", user.UserID).Info("User signed up")
	return s.issue(user)
}

func (s *authService) GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperror.BadRequest("Google token is required")
	}
	if s.google == nil {
		return nil, apperror.BadRequest("Google OAuth not configured on server")
	}

	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, apperror.Internal("Google authentication failed", err)
	}

	user, err := s.users.FindOrCreateGoogleUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// userExists is a Conflict the API still answers with 400.
func userExists() error {
	return apperror.Conflict("User already exists").WithStatus(http.StatusBadRequest)
}

func signupValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.BadRequest("All fields are required")
	}

	var badEmail, shortPassword bool
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return apperror.BadRequest("All fields are required")
		case "emailshape":
			badEmail = true
		case "min":
			shortPassword = true
		}
	}

	switch {
	case badEmail:
		return apperror.BadRequest("Invalid email format")
	case shortPassword:
		return apperror.BadRequest("Password must be at least 6 characters")
	default:
		return apperror.BadRequest("All fields are required")
	}
}
