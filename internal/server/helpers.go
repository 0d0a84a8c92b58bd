package server

import (
	"errors"
	"io"
	"mime/multipart"

	"mural/internal/models"
	"mural/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps an AppError code to an HTTP status and writes the
// standardized error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch appErr.Code {
		case models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeStorage:
			status = fiber.StatusInternalServerError
		}
		return models.RespondWithError(c, status, appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// collectMediaFiles reads the named multipart file parts into memory.
// A request without a multipart body yields an empty slice so the service
// layer can apply its own count validation.
func collectMediaFiles(c *fiber.Ctx, field string) ([]service.MediaFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File[field]
	files := make([]service.MediaFile, 0, len(headers))
	for _, header := range headers {
		file, err := readMediaFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readMediaFile(header *multipart.FileHeader) (service.MediaFile, error) {
	f, err := header.Open()
	if err != nil {
		return service.MediaFile{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return service.MediaFile{}, err
	}

	return service.MediaFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
