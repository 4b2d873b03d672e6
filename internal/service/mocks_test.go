package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"memories/internal/models"
	"memories/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	args := m.Called(ctx, googleID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	args := m.Called(ctx, userID, googleID)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if fn, ok := args.Get(0).(func(context.Context, string) *models.Post); ok {
		return fn(ctx, postID), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByCreatorName(ctx context.Context, name string) ([]*models.Post, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateLikes(ctx context.Context, postID string, likes []string) error {
	args := m.Called(ctx, postID, likes)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	args := m.Called(ctx, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, commentID, text string) error {
	args := m.Called(ctx, commentID, text)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) GetByID(ctx context.Context, replyID string) (*models.Reply, error) {
	args := m.Called(ctx, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.Reply, error) {
	args := m.Called(ctx, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reply), args.Error(1)
}

func (m *MockReplyRepository) UpdateText(ctx context.Context, replyID, text string) error {
	args := m.Called(ctx, replyID, text)
	return args.Error(0)
}

func (m *MockReplyRepository) Delete(ctx context.Context, replyID string) error {
	args := m.Called(ctx, replyID)
	return args.Error(0)
}

type MockHealthRepository struct {
	mock.Mock
}

func (m *MockHealthRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHealthRepository) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, token string) (*GoogleProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleProfile), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, postID string, data []byte, contentType, ext string) (string, error) {
	args := m.Called(ctx, postID, data, contentType, ext)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, postID, imageURL string) error {
	args := m.Called(ctx, postID, imageURL)
	return args.Error(0)
}

func (m *MockStorage) OwnsURL(imageURL string) bool {
	args := m.Called(imageURL)
	return args.Bool(0)
}

func (m *MockStorage) OwnsPostImage(postID, imageURL string) bool {
	args := m.Called(postID, imageURL)
	return args.Bool(0)
}

// newMockRepository returns a repository whose thread queries return nothing.
func newMockRepository() (*repository.Repository, *MockUserRepository, *MockPostRepository, *MockCommentRepository, *MockReplyRepository) {
	users := new(MockUserRepository)
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	replies := new(MockReplyRepository)

	rep := &repository.Repository{
		User:    users,
		Post:    posts,
		Comment: comments,
		Reply:   replies,
	}
	return rep, users, posts, comments, replies
}

func expectEmptyThreads(comments *MockCommentRepository, replies *MockReplyRepository) {
	comments.On("GetByPostIDs", mock.Anything, mock.Anything).Return([]models.Comment{}, nil).Maybe()
	replies.On("GetByCommentIDs", mock.Anything, mock.Anything).Return([]models.Reply{}, nil).Maybe()
}
