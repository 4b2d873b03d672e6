package service

import (
	"memories/internal/config"
	"memories/internal/profanity"
	"memories/internal/repository"
	"memories/internal/storage"
)

type Service struct {
	User    UserService
	Token   TokenService
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Health  HealthService
}

// NewService wires the services. store may be nil when object storage is
// disabled.
func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	filter := profanity.NewDefault(cfg.ProfanityExtraWords...)
	google := NewGoogleVerifier(cfg.GoogleClientID)

	users := NewUserService(rep.User)
	tokens := NewTokenService(cfg.JWTSecretKey, google, users)

	return &Service{
		User:    users,
		Token:   tokens,
		Auth:    NewAuthService(rep.User, users, tokens, google),
		Post:    NewPostService(rep, users, filter, store),
		Comment: NewCommentService(rep, users, filter),
		Health:  NewHealthService(rep.Health),
	}
}
