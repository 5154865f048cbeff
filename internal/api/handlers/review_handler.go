package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		CreateReview(c *fiber.Ctx) error
		EditReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReview, err)
	}

	res, err := h.reviewService.CreateReview(c.Context(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReview)
}

func (h *reviewHandler) EditReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reviewID := c.Params("review_id")
	req := new(domain.UpdateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditReview, err)
	}

	res, err := h.reviewService.EditReview(c.Context(), reviewID, *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedEditReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	reviewID := c.Params("review_id")

	if err := h.reviewService.DeleteReview(c.Context(), reviewID, userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteReview, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}
