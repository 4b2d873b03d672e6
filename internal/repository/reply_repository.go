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

const replyColumns = `reply_id, comment_id, text, author_id, author_name, created_at`

type replyRepository struct {
	db *sqlx.DB
}

func NewReplyRepository(db *sqlx.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	query := `
		INSERT INTO replies (reply_id, comment_id, text, author_id, author_name, created_at)
		VALUES (:reply_id, :comment_id, :text, :author_id, :author_name, :created_at)
	`

	if reply.ReplyID == "" {
		reply.ReplyID = uuid.New().String()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NamedExecContext(ctx, query, reply); err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}

	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, replyID string) (*models.Reply, error) {
	query := `SELECT ` + replyColumns + ` FROM replies WHERE reply_id = $1`

	var reply models.Reply
	err := r.db.GetContext(ctx, &reply, query, replyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reply with id %s: %w", replyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	return &reply, nil
}

func (r *replyRepository) GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.Reply, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + replyColumns + ` FROM replies
		WHERE comment_id = ANY($1)
		ORDER BY created_at ASC
	`

	var replies []models.Reply
	if err := r.db.SelectContext(ctx, &replies, query, pq.Array(commentIDs)); err != nil {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}

	return replies, nil
}

func (r *replyRepository) UpdateText(ctx context.Context, replyID, text string) error {
	query := `UPDATE replies SET text = $1 WHERE reply_id = $2`

	result, err := r.db.ExecContext(ctx, query, text, replyID)
	if err != nil {
		return fmt.Errorf("failed to update reply: %w", err)
	}

	return expectAffected(result, "reply", replyID)
}

func (r *replyRepository) Delete(ctx context.Context, replyID string) error {
	query := `DELETE FROM replies WHERE reply_id = $1`

	result, err := r.db.ExecContext(ctx, query, replyID)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	return expectAffected(result, "reply", replyID)
}
