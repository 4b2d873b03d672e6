package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"memories/internal/models"
)

const postColumns = `post_id, title, message, name, creator_id, tags, selected_file, likes, created_at, updated_at`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, title, message, name, creator_id, tags, selected_file, likes, created_at, updated_at)
        VALUES
        (:post_id, :title, :message, :name, :creator_id, :tags, :selected_file, :likes, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Normalize()

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with id %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// List returns one page of posts, newest first.
func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var posts []*models.Post
	if err := r.DB.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Search matches the text case-insensitively in title or message, or any
// shared tag. An empty filter matches every post.
func (r *PostRepositoryImpl) Search(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	var conditions []string
	var args []interface{}

	if filter.Text != "" {
		args = append(args, "%"+escapeLike(filter.Text)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d OR message ILIKE $%d", n, n))
	}

	if len(filter.Tags) > 0 {
		args = append(args, pq.Array(filter.Tags))
		conditions = append(conditions, fmt.Sprintf("tags && $%d", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " OR ")
	}
	query += ` ORDER BY created_at DESC`

	var posts []*models.Post
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return posts, nil
}

// GetByCreatorName matches the denormalised author name, not the creator id.
func (r *PostRepositoryImpl) GetByCreatorName(ctx context.Context, name string) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE name = $1
		ORDER BY created_at DESC
	`

	var posts []*models.Post
	if err := r.DB.SelectContext(ctx, &posts, query, name); err != nil {
		return nil, fmt.Errorf("failed to get posts by creator: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			message = :message,
			tags = :tags,
			selected_file = :selected_file,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now().UTC()
	post.Normalize()

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return expectAffected(result, "post", post.PostID)
}

// UpdateLikes overwrites the likes set; concurrent toggles are last-write-wins.
func (r *PostRepositoryImpl) UpdateLikes(ctx context.Context, postID string, likes []string) error {
	query := `UPDATE posts SET likes = $1, updated_at = $2 WHERE post_id = $3`

	if likes == nil {
		likes = []string{}
	}

	result, err := r.DB.ExecContext(ctx, query, pq.StringArray(likes), time.Now().UTC(), postID)
	if err != nil {
		return fmt.Errorf("failed to update likes: %w", err)
	}

	return expectAffected(result, "post", postID)
}

// Delete removes the post; comments and replies go with it through ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return expectAffected(result, "post", postID)
}

func expectAffected(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s with id %s: %w", entity, id, ErrNotFound)
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
