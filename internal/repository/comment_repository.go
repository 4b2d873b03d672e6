package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"memories/internal/models"
)

const commentColumns = `comment_id, post_id, text, author_id, author_name, created_at`

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, text, author_id, author_name, created_at)
		VALUES (:comment_id, :post_id, :text, :author_id, :author_name, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment with id %s: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// GetByPostIDs returns the comments of all given posts in ascending creation order.
func (r *commentRepository) GetByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE post_id = ANY($1)
		ORDER BY created_at ASC
	`

	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, commentID, text string) error {
	query := `UPDATE comments SET text = $1 WHERE comment_id = $2`

	result, err := r.db.ExecContext(ctx, query, text, commentID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return expectAffected(result, "comment", commentID)
}

// Delete removes the comment and, through ON DELETE CASCADE, its replies.
func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return expectAffected(result, "comment", commentID)
}
