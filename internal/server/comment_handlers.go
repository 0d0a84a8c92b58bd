package server

import (
	"mural/internal/models"
	"mural/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	UserID  string `json:"userID"`
	Content string `json:"content"`
}

// AddComment appends a comment to a post and notifies the post owner
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.AddComment(c.UserContext(), c.Params("postId"), service.CommentInput{
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateComment rewrites a comment's content when id and author match
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdateComment(
		c.UserContext(), c.Params("postId"), c.Params("commentId"), service.CommentInput{
			UserID:  req.UserID,
			Content: req.Content,
		})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeleteComment removes a comment when the caller authored it or owns the post
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Query("userID")
	if userID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userID query parameter is required"))
	}

	post, err := s.postService.DeleteComment(
		c.UserContext(), c.Params("postId"), c.Params("commentId"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
