package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/metrics"
	"memories/internal/models"
	"memories/internal/profanity"
	"memories/internal/repository"
)

// CommentInput is the body of comment and reply writes. Name is used as the
// author name when the caller has no profile name.
type CommentInput struct {
	Text string
	Name string
}

// CommentService manages comments and their replies. Every operation returns
// the full post with its thread re-read from the store.
type CommentService interface {
	AddComment(ctx context.Context, postID, userID string, input CommentInput) (*models.Post, error)
	EditComment(ctx context.Context, postID, commentID, userID, text string) (*models.Post, error)
	DeleteComment(ctx context.Context, postID, commentID, userID string) (*models.Post, error)
	AddReply(ctx context.Context, postID, commentID, userID string, input CommentInput) (*models.Post, error)
	EditReply(ctx context.Context, postID, commentID, replyID, userID, text string) (*models.Post, error)
	DeleteReply(ctx context.Context, postID, commentID, replyID, userID string) (*models.Post, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	users       UserService
	filter      *profanity.Filter
	threads     *threadLoader
}

func NewCommentService(rep *repository.Repository, users UserService, filter *profanity.Filter) CommentService {
	return &commentService{
		postRepo:    rep.Post,
		commentRepo: rep.Comment,
		replyRepo:   rep.Reply,
		users:       users,
		filter:      filter,
		threads:     &threadLoader{commentRepo: rep.Comment, replyRepo: rep.Reply},
	}
}

func (s *commentService) AddComment(ctx context.Context, postID, userID string, input CommentInput) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	text, err := s.cleanText(input.Text)
	if err != nil {
		return nil, err
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     post.PostID,
		Text:       text,
		AuthorID:   userID,
		AuthorName: s.users.DisplayName(ctx, userID, input.Name),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperror.Internal("Failed to add comment", err)
	}

	metrics.CommentsCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"post_id":    postID,
		"comment_id": comment.CommentID,
	}).Debug("Comment added")

	return s.reload(ctx, post)
}

func (s *commentService) EditComment(ctx context.Context, postID, commentID, userID, text string) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	cleaned, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}

	post, comment, err := s.getComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, apperror.Forbidden("You can only edit your own comments")
	}

	if err := s.commentRepo.UpdateText(ctx, commentID, cleaned); err != nil {
		return nil, mapCommentError(err, "comment", commentID, "Failed to update comment")
	}

	return s.reload(ctx, post)
}

func (s *commentService) DeleteComment(ctx context.Context, postID, commentID, userID string) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	post, comment, err := s.getComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, apperror.Forbidden("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, mapCommentError(err, "comment", commentID, "Failed to delete comment")
	}

	return s.reload(ctx, post)
}

func (s *commentService) AddReply(ctx context.Context, postID, commentID, userID string, input CommentInput) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	text, err := s.cleanText(input.Text)
	if err != nil {
		return nil, err
	}

	post, comment, err := s.getComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{
		CommentID:  comment.CommentID,
		Text:       text,
		AuthorID:   userID,
		AuthorName: s.users.DisplayName(ctx, userID, input.Name),
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, apperror.Internal("Failed to add reply", err)
	}

	metrics.CommentsCreated.Inc()

	return s.reload(ctx, post)
}

func (s *commentService) EditReply(ctx context.Context, postID, commentID, replyID, userID, text string) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	cleaned, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}

	post, reply, err := s.getReply(ctx, postID, commentID, replyID)
	if err != nil {
		return nil, err
	}

	if reply.AuthorID != userID {
		return nil, apperror.Forbidden("You can only edit your own replies")
	}

	if err := s.replyRepo.UpdateText(ctx, replyID, cleaned); err != nil {
		return nil, mapCommentError(err, "reply", replyID, "Failed to update reply")
	}

	return s.reload(ctx, post)
}

func (s *commentService) DeleteReply(ctx context.Context, postID, commentID, replyID, userID string) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	post, reply, err := s.getReply(ctx, postID, commentID, replyID)
	if err != nil {
		return nil, err
	}

	if reply.AuthorID != userID {
		return nil, apperror.Forbidden("You can only delete your own replies")
	}

	if err := s.replyRepo.Delete(ctx, replyID); err != nil {
		return nil, mapCommentError(err, "reply", replyID, "Failed to delete reply")
	}

	return s.reload(ctx, post)
}

func (s *commentService) cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperror.BadRequest("Comment text is required")
	}
	return s.filter.Clean(text), nil
}

func (s *commentService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, postNotFound(postID)
		}
		return nil, apperror.Internal("Failed to load post", err)
	}
	return post, nil
}

// getComment loads the post and a comment that must belong to it.
func (s *commentService) getComment(ctx context.Context, postID, commentID string) (*models.Post, *models.Comment, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, nil, mapCommentError(err, "comment", commentID, "Failed to load comment")
	}

	if comment.PostID != post.PostID {
		return nil, nil, notFound("comment", commentID)
	}

	return post, comment, nil
}

func (s *commentService) getReply(ctx context.Context, postID, commentID, replyID string) (*models.Post, *models.Reply, error) {
	post, comment, err := s.getComment(ctx, postID, commentID)
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, nil, mapCommentError(err, "reply", replyID, "Failed to load reply")
	}

	if reply.CommentID != comment.CommentID {
		return nil, nil, notFound("reply", replyID)
	}

	return post, reply, nil
}

func (s *commentService) reload(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := s.threads.load(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func mapCommentError(err error, entity, id, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entity, id)
	}
	return apperror.Internal(message, err)
}

func notFound(entity, id string) error {
	return apperror.NotFound(fmt.Sprintf("No %s with id: %s", entity, id))
}
