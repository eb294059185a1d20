package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"marketapi/internal/http/middleware"
	"marketapi/internal/service"
)

// idParam parses the :id route parameter.
func idParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// pageParams parses skip/limit query parameters with the service defaults.
func pageParams(c *fiber.Ctx) (int, int, error) {
	skip, err := strconv.Atoi(c.Query("skip", "0"))
	if err != nil {
		return 0, 0, errors.New("invalid skip")
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultLimit)))
	if err != nil {
		return 0, 0, errors.New("invalid limit")
	}
	return skip, limit, nil
}

var errInvalidQueryBool = errors.New("invalid is_active")

func errInvalidQueryInt(name string) error {
	return fmt.Errorf("invalid %s", name)
}

// currentUserID returns the caller identity resolved by middleware.CurrentUser.
func currentUserID(c *fiber.Ctx) int64 {
	if v := c.Locals(middleware.UserIDLocalKey); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return middleware.DefaultUserID
}

// writeServiceError translates domain sentinels to HTTP error responses. The
// sentinel text is safe to expose; anything unrecognized is masked.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrLocationNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrItemNoPhoto),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrLocationExists),
		errors.Is(err, service.ErrUserExists):
		return writeError(c, fiber.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, service.ErrMessageAccessDenied):
		return writeError(c, fiber.StatusForbidden, "ACCESS_DENIED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
