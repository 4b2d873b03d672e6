package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"memories/internal/models"
	"memories/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signin(ctx context.Context, input service.SigninInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Signup(ctx context.Context, input service.SignupInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) GoogleSignIn(ctx context.Context, idToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPosts(ctx context.Context, page int) (*models.PostsPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostsPage), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) SearchPosts(ctx context.Context, query string, tags []string) ([]*models.Post, error) {
	args := m.Called(ctx, query, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostService) GetPostsByCreator(ctx context.Context, name string) ([]*models.Post, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, userID string, input service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID, userID string, input service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, postID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostService) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, postID, userID string, input service.CommentInput) (*models.Post, error) {
	args := m.Called(ctx, postID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockCommentService) EditComment(ctx context.Context, postID, commentID, userID, text string) (*models.Post, error) {
	args := m.Called(ctx, postID, commentID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, postID, commentID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockCommentService) AddReply(ctx context.Context, postID, commentID, userID string, input service.CommentInput) (*models.Post, error) {
	args := m.Called(ctx, postID, commentID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockCommentService) EditReply(ctx context.Context, postID, commentID, replyID, userID, text string) (*models.Post, error) {
	args := m.Called(ctx, postID, commentID, replyID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockCommentService) DeleteReply(ctx context.Context, postID, commentID, replyID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, commentID, replyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) service.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(service.HealthStatus)
}

func (m *MockHealthService) Uptime() time.Duration {
	return time.Minute
}
