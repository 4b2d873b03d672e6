package handlers

import (
	"memories/internal/config"
	"memories/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	HealthService  service.HealthService
	Cfg            *config.Config
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		HealthService:  service.Health,
		Cfg:            config,
	}
}
