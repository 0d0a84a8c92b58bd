package server

import (
	"errors"

	"mural/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetNotifications returns a user's stored notifications, newest first
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notificationRepo.GetByUserID(c.UserContext(), c.Params("userID"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return c.JSON(notifications)
}

// MarkNotificationAsRead flags a single notification as read
func (s *Server) MarkNotificationAsRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.notificationRepo.MarkAsRead(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Notification", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// DeleteNotification removes a single notification
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.notificationRepo.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Notification", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
