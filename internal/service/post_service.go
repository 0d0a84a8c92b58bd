// Package service contains the business logic for posts and their side effects.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"mural/internal/media"
	"mural/internal/middleware"
	"mural/internal/models"
	"mural/internal/notifications"
	"mural/internal/observability"
	"mural/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minMediaFiles = 1
	maxMediaFiles = 3

	// Display-name fallbacks when the acting user cannot be resolved.
	fallbackLikerName     = "Someone"
	fallbackCommenterName = "Anonymous"
)

// MediaFile is one uploaded file, already read out of the multipart form.
type MediaFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	Files       []MediaFile
}

// UpdatePostInput overwrites a post's fields and optionally appends media.
type UpdatePostInput struct {
	PostID      string
	Title       string
	Description string
	Category    string
	Files       []MediaFile
}

// CommentInput carries the author and content of a comment mutation.
type CommentInput struct {
	UserID  string
	Content string
}

// PostService implements the post operations against the post store, the
// user lookup, the notification store and the local media store.
type PostService struct {
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	mediaStore       *media.Store
	notifier         *notifications.Notifier
}

// NewPostService wires a PostService with its collaborators. notifier may
// be nil when no Redis is available; stored notifications still work.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	mediaStore *media.Store,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mediaStore:       mediaStore,
		notifier:         notifier,
	}
}

// CreatePost validates the upload, stores each media file and persists the
// new post. Already-stored files are not rolled back when a later file
// fails; the media store's unique naming keeps the orphans harmless.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if len(in.Files) < minMediaFiles || len(in.Files) > maxMediaFiles {
		return nil, models.NewValidationError("You must upload between 1 and 3 media files.")
	}
	if err := validateMediaTypes(in.Files); err != nil {
		return nil, err
	}

	mediaURLs := make([]string, 0, len(in.Files))
	for _, f := range in.Files {
		url, err := s.mediaStore.Save(f.Name, f.Content)
		if err != nil {
			return nil, models.NewStorageError("Failed to store media file.", err)
		}
		mediaURLs = append(mediaURLs, url)
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Media:       mediaURLs,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// GetAllPosts returns every post in store order.
func (s *PostService) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetPostsByUser returns all posts owned by userID; no matches is an empty
// slice, not an error.
func (s *PostService) GetPostsByUser(ctx context.Context, userID string) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPostByID returns the post or a NotFound error.
func (s *PostService) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	return s.getPost(ctx, postID)
}

// DeletePost removes the post record first, then deletes its media files
// best-effort. The record removal is authoritative: file cleanup failures
// are logged, never surfaced.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}

	for _, url := range post.Media {
		if err := s.mediaStore.Remove(url); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete media file for removed post",
				slog.String("post_id", postID),
				slog.String("media_url", url),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// UpdatePost overwrites title, description and category unconditionally and
// appends any new media files (same MIME allowlist as creation, uncapped).
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := validateMediaTypes(in.Files); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Description = in.Description
	post.Category = in.Category

	for _, f := range in.Files {
		url, saveErr := s.mediaStore.Save(f.Name, f.Content)
		if saveErr != nil {
			return nil, models.NewStorageError("Failed to store media file.", saveErr)
		}
		post.Media = append(post.Media, url)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeleteMedia removes one media entry from the post and its file from disk.
// The store is only written after the file deletion succeeded.
func (s *PostService) DeleteMedia(ctx context.Context, postID, mediaURL string) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.RemoveMedia(mediaURL) {
		return nil, models.NewNotFoundError("Media file", mediaURL)
	}

	if err := s.mediaStore.Remove(mediaURL); err != nil {
		return nil, models.NewStorageError("Failed to delete media file.", err)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// LikePost toggles userID's like flag (absent counts as false) and notifies
// the owner on every toggle performed by someone else.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.ToggleLike(userID)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if userID != post.UserID {
		name := s.resolveName(ctx, userID, fallbackLikerName)
		s.notifyOwner(ctx, post, fmt.Sprintf("%s liked your post: %s", name, post.Title), "like")
	}
	return post, nil
}

// AddComment appends a comment with a display-name snapshot and notifies
// the owner when the author is someone else.
func (s *PostService) AddComment(ctx context.Context, postID string, in CommentInput) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	name := s.resolveName(ctx, in.UserID, fallbackCommenterName)
	post.Comments = append(post.Comments, models.Comment{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		UserFullName: name,
		Content:      in.Content,
	})

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if in.UserID != post.UserID {
		s.notifyOwner(ctx, post, fmt.Sprintf("%s commented on your post: %s", name, post.Title), "comment")
	}
	return post, nil
}

// UpdateComment replaces the content of the first comment matching both the
// comment ID and the author. No match is a silent no-op; the post is
// persisted and returned either way.
func (s *PostService) UpdateComment(ctx context.Context, postID, commentID string, in CommentInput) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	for i := range post.Comments {
		if post.Comments[i].ID == commentID && post.Comments[i].UserID == in.UserID {
			post.Comments[i].Content = in.Content
			break
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeleteComment removes every comment matching commentID where the
// requester is the comment's author or the post's owner. The post is
// persisted and returned regardless of whether anything was removed.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, userID string) (*models.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	kept := post.Comments[:0]
	for _, c := range post.Comments {
		remove := c.ID == commentID && (c.UserID == userID || post.UserID == userID)
		if !remove {
			kept = append(kept, c)
		}
	}
	post.Comments = kept

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// resolveName looks up a user's display name, falling back when the user
// cannot be resolved.
func (s *PostService) resolveName(ctx context.Context, userID, fallback string) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.FullName == "" {
		return fallback
	}
	return user.FullName
}

// notifyOwner stores a notification for the post owner and publishes it to
// the live channel. Failures are logged, never surfaced: the triggering
// mutation already succeeded.
func (s *PostService) notifyOwner(ctx context.Context, post *models.Post, message, trigger string) {
	notification := &models.Notification{
		UserID:    post.UserID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().Format(models.TimestampLayout),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to store notification",
			slog.String("post_id", post.ID),
			slog.String("trigger", trigger),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.NotificationsCreated.WithLabelValues(trigger).Inc()

	if s.notifier != nil {
		if err := s.notifier.PublishNotification(ctx, notification); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish notification",
				slog.String("notification_id", notification.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// validateMediaTypes enforces the media MIME allowlist. The same policy
// applies on creation and on update appends.
func validateMediaTypes(files []MediaFile) error {
	for _, f := range files {
		if !isAllowedMediaType(f.ContentType) {
			return models.NewValidationError(fmt.Sprintf("Unsupported media type %q for file %q", f.ContentType, f.Name))
		}
	}
	return nil
}

func isAllowedMediaType(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "video/mp4":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
