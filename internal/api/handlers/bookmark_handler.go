package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/bookmark"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BookmarkHandler interface {
		BookmarkRecipe(c *fiber.Ctx) error
		RemoveBookmark(c *fiber.Ctx) error
	}

	bookmarkHandler struct {
		bookmarkService bookmark.BookmarkService
		validator       *validator.Validate
	}
)

func NewBookmarkHandler(bookmarkService bookmark.BookmarkService, validator *validator.Validate) BookmarkHandler {
	return &bookmarkHandler{
		bookmarkService: bookmarkService,
		validator:       validator,
	}
}

func (h *bookmarkHandler) BookmarkRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.BookmarkRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBookmark, err)
	}

	res, err := h.bookmarkService.BookmarkRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedBookmark, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessBookmark)
}

func (h *bookmarkHandler) RemoveBookmark(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipe_id")

	if err := h.bookmarkService.RemoveBookmark(c.Context(), recipeID, userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRemoveBookmark, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveBookmark)
}
