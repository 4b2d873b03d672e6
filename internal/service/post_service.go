package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/metrics"
	"memories/internal/models"
	"memories/internal/profanity"
	"memories/internal/repository"
	"memories/internal/storage"
)

// PageSize is the number of posts on one page of the feed.
const PageSize = 8

// PostInput carries post fields from a request. Nil fields are left
// untouched by updates.
type PostInput struct {
	Title        *string  `json:"title"`
	Message      *string  `json:"message"`
	Tags         []string `json:"tags"`
	SelectedFile *string  `json:"selectedFile"`
	Name         string   `json:"name"`
}

type PostService interface {
	GetPosts(ctx context.Context, page int) (*models.PostsPage, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	SearchPosts(ctx context.Context, query string, tags []string) ([]*models.Post, error)
	GetPostsByCreator(ctx context.Context, name string) ([]*models.Post, error)
	CreatePost(ctx context.Context, userID string, input PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, postID, userID string, input PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	LikePost(ctx context.Context, postID, userID string) (*models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	users    UserService
	filter   *profanity.Filter
	threads  *threadLoader
	images   *imageStore
}

func NewPostService(rep *repository.Repository, users UserService, filter *profanity.Filter, store storage.Storage) PostService {
	return &postService{
		postRepo: rep.Post,
		users:    users,
		filter:   filter,
		threads:  &threadLoader{commentRepo: rep.Comment, replyRepo: rep.Reply},
		images:   &imageStore{storage: store},
	}
}

func (s *postService) GetPosts(ctx context.Context, page int) (*models.PostsPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to count posts", err)
	}

	posts, err := s.postRepo.List(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, apperror.Internal("Failed to list posts", err)
	}

	if err := s.threads.load(ctx, posts...); err != nil {
		return nil, err
	}

	return &models.PostsPage{
		Posts:         nonNilPosts(posts),
		CurrentPage:   page,
		NumberOfPages: NumberOfPages(total),
	}, nil
}

// NumberOfPages is ceil(total / PageSize).
func NumberOfPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.threads.load(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) SearchPosts(ctx context.Context, query string, tags []string) ([]*models.Post, error) {
	filter := repository.PostFilter{Text: strings.TrimSpace(query), Tags: cleanTags(tags)}

	posts, err := s.postRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to search posts", err)
	}

	if err := s.threads.load(ctx, posts...); err != nil {
		return nil, err
	}

	return nonNilPosts(posts), nil
}

func (s *postService) GetPostsByCreator(ctx context.Context, name string) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByCreatorName(ctx, name)
	if err != nil {
		return nil, apperror.Internal("Failed to load posts by creator", err)
	}

	if err := s.threads.load(ctx, posts...); err != nil {
		return nil, err
	}

	return nonNilPosts(posts), nil
}

func (s *postService) CreatePost(ctx context.Context, userID string, input PostInput) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	post := &models.Post{
		PostID:    uuid.New().String(),
		Title:     s.filter.Clean(deref(input.Title)),
		Message:   s.filter.Clean(deref(input.Message)),
		Name:      s.users.DisplayName(ctx, userID, input.Name),
		CreatorID: userID,
		Tags:      cleanTags(input.Tags),
	}

	selectedFile, err := s.images.save(ctx, post.PostID, deref(input.SelectedFile))
	if err != nil {
		return nil, err
	}
	post.SelectedFile = selectedFile

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.images.remove(ctx, post.PostID, selectedFile)
		return nil, apperror.Internal("Failed to create post", err)
	}

	metrics.PostsCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"post_id": post.PostID,
		"user_id": userID,
	}).Info("Post created")

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID, userID string, input PostInput) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.CreatorID != userID {
		return nil, apperror.Forbidden("You can only edit your own posts")
	}

	if input.Title != nil {
		post.Title = s.filter.Clean(*input.Title)
	}
	if input.Message != nil {
		post.Message = s.filter.Clean(*input.Message)
	}
	if input.Tags != nil {
		post.Tags = cleanTags(input.Tags)
	}

	oldFile := post.SelectedFile
	if input.SelectedFile != nil && *input.SelectedFile != oldFile {
		selectedFile, err := s.images.save(ctx, post.PostID, *input.SelectedFile)
		if err != nil {
			return nil, err
		}
		post.SelectedFile = selectedFile
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if post.SelectedFile != oldFile {
			s.images.remove(ctx, post.PostID, post.SelectedFile)
		}
		return nil, s.mapRepoError(err, postID, "Failed to update post")
	}

	if post.SelectedFile != oldFile {
		s.images.remove(ctx, post.PostID, oldFile)
	}

	if err := s.threads.load(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return apperror.Unauthenticated("Unauthenticated")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.CreatorID != userID {
		return apperror.Forbidden("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return s.mapRepoError(err, postID, "Failed to delete post")
	}

	s.images.remove(ctx, post.PostID, post.SelectedFile)

	logrus.WithFields(logrus.Fields{
		"post_id": postID,
		"user_id": userID,
	}).Info("Post deleted")

	return nil
}

func (s *postService) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("Unauthenticated")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := post.ToggleLike(userID)

	if err := s.postRepo.UpdateLikes(ctx, postID, post.Likes); err != nil {
		return nil, s.mapRepoError(err, postID, "Failed to update likes")
	}

	if liked {
		metrics.LikesGiven.Inc()
	}

	if err := s.threads.load(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, s.mapRepoError(err, postID, "Failed to load post")
	}
	return post, nil
}

func (s *postService) mapRepoError(err error, postID, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return postNotFound(postID)
	}
	return apperror.Internal(message, err)
}

func postNotFound(postID string) error {
	return apperror.NotFound(fmt.Sprintf("No post with id: %s", postID))
}

// cleanTags trims tags and drops empty entries.
func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

func nonNilPosts(posts []*models.Post) []*models.Post {
	if posts == nil {
		return []*models.Post{}
	}
	return posts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
