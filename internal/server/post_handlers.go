package server

import (
	"mural/internal/models"
	"mural/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles multipart post creation with 1 to 3 media files
func (s *Server) CreatePost(c *fiber.Ctx) error {
	files, err := collectMediaFiles(c, "mediaFiles")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Failed to read uploaded files."))
	}

	input := service.CreatePostInput{
		UserID:      c.FormValue("userID"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Files:       files,
	}

	post, err := s.postService.CreatePost(c.UserContext(), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetAllPosts returns every post, newest first
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.postService.GetAllPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPostsByUser returns all posts created by a single user
func (s *Server) GetPostsByUser(c *fiber.Ctx) error {
	posts, err := s.postService.GetPostsByUser(c.UserContext(), c.Params("userID"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPostByID returns a single post document
func (s *Server) GetPostByID(c *fiber.Ctx) error {
	post, err := s.postService.GetPostByID(c.UserContext(), c.Params("postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost overwrites a post's text fields and appends any uploaded media
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	files, err := collectMediaFiles(c, "newMediaFiles")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Failed to read uploaded files."))
	}

	input := service.UpdatePostInput{
		PostID:      c.Params("postId"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Files:       files,
	}

	post, err := s.postService.UpdatePost(c.UserContext(), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes the post record, then its media files best-effort
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.DeletePost(c.UserContext(), c.Params("postId")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// DeleteMedia detaches one media URL from a post and deletes the file.
// The URL arrives in a JSON body: {"mediaUrl": "/media/..."}.
func (s *Server) DeleteMedia(c *fiber.Ctx) error {
	var req struct {
		MediaURL string `json:"mediaUrl"`
	}
	if err := c.BodyParser(&req); err != nil || req.MediaURL == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("mediaUrl is required"))
	}
	mediaURL := req.MediaURL

	post, err := s.postService.DeleteMedia(c.UserContext(), c.Params("postId"), mediaURL)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// LikePost toggles the caller's like on a post
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Query("userID")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userID query parameter is required"))
	}

	post, err := s.postService.LikePost(c.UserContext(), c.Params("postId"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
