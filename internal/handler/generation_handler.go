package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickthumb/internal/errors"
	"quickthumb/internal/middleware"
	"quickthumb/internal/service"
)

// GenerationHandler handles thumbnail generation and history endpoints.
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// GenerateRequest represents a thumbnail generation request. The two image
// fields are base64, with or without a data-URI prefix.
type GenerateRequest struct {
	Description    string `json:"description"`
	ThumbnailText  string `json:"thumbnail_text" validate:"required"`
	Style          string `json:"style"`
	AspectRatio    string `json:"aspect_ratio"`
	SubjectImage   string `json:"subject_image"`
	ReferenceImage string `json:"reference_image"`
}

// Generate godoc
// @Summary Generate a thumbnail
// @Tags generation
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation parameters"
// @Success 200 {object} service.GenerateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate [post]
func (h *GenerationHandler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.generationService.Generate(c.Request().Context(), middleware.CurrentUser(c), service.GenerateInput{
		Description:    req.Description,
		ThumbnailText:  req.ThumbnailText,
		Style:          req.Style,
		AspectRatio:    req.AspectRatio,
		SubjectImage:   req.SubjectImage,
		ReferenceImage: req.ReferenceImage,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// ListThumbnails godoc
// @Summary List the caller's recent thumbnails
// @Tags generation
// @Produce json
// @Success 200 {array} model.Thumbnail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /thumbnails [get]
func (h *GenerationHandler) ListThumbnails(c echo.Context) error {
	user := middleware.CurrentUser(c)
	thumbnails, err := h.generationService.ListThumbnails(c.Request().Context(), user.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, thumbnails)
}
