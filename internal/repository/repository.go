package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"memories/internal/models"
)

// ErrNotFound is wrapped by every lookup that matched no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped when a unique constraint rejects a write.
var ErrDuplicate = errors.New("already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error)
	LinkGoogleID(ctx context.Context, userID, googleID string) error
}

// PostFilter selects posts matching Text in title or message, or carrying any of Tags.
type PostFilter struct {
	Text string
	Tags []string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	GetByCreatorName(ctx context.Context, name string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateLikes(ctx context.Context, postID string, likes []string) error
	Delete(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error)
	UpdateText(ctx context.Context, commentID, text string) error
	Delete(ctx context.Context, commentID string) error
}

type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, replyID string) (*models.Reply, error)
	GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.Reply, error)
	UpdateText(ctx context.Context, replyID, text string) error
	Delete(ctx context.Context, replyID string) error
}

type HealthRepository interface {
	Ping(ctx context.Context) error
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Reply   ReplyRepository
	Health  HealthRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Reply:   NewReplyRepository(db),
		Health:  NewHealthRepository(db),
	}
}
