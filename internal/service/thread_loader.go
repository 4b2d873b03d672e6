package service

import (
	"context"

	"memories/internal/apperror"
	"memories/internal/models"
	"memories/internal/repository"
)

// threadLoader fills posts with their comments and replies, both in
// ascending creation order.
type threadLoader struct {
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
}

func (l *threadLoader) load(ctx context.Context, posts ...*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.PostID)
	}

	comments, err := l.commentRepo.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return apperror.Internal("Failed to load comments", err)
	}

	commentIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.CommentID)
	}

	replies, err := l.replyRepo.GetByCommentIDs(ctx, commentIDs)
	if err != nil {
		return apperror.Internal("Failed to load replies", err)
	}

	repliesByComment := make(map[string][]models.Reply, len(comments))
	for _, r := range replies {
		repliesByComment[r.CommentID] = append(repliesByComment[r.CommentID], r)
	}

	commentsByPost := make(map[string][]models.Comment, len(posts))
	for _, c := range comments {
		c.Replies = repliesByComment[c.CommentID]
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
	}

	for _, p := range posts {
		p.Comments = commentsByPost[p.PostID]
		p.Normalize()
	}

	return nil
}
