package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"marketapi/internal/model"
	"marketapi/internal/service"
)

// CreateReview handles POST /reviews. The reviewer is the authenticated
// caller; a repeat review of the same item returns the stored one.
func CreateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload model.ReviewCreate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if payload.Rating < 1 || payload.Rating > 5 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RATING", "rating must be between 1 and 5")
		}
		payload.UserID = currentUserID(c)
		rev, err := svc.Create(c.UserContext(), payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rev)
	}
}

// GetReview handles GET /reviews/:id.
func GetReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rev, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rev)
	}
}

// ListReviews handles GET /reviews with optional item_id and user_id filters.
func ListReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		filter, err := reviewFilterParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", err.Error())
		}
		revs, err := svc.List(c.UserContext(), filter, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(revs)
	}
}

// ListItemReviews handles GET /reviews/item/:id.
func ListItemReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		revs, err := svc.ListForItem(c.UserContext(), itemID, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(revs)
	}
}

// GetItemRating handles GET /reviews/item/:id/average-rating.
func GetItemRating(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		avg, err := svc.ItemAverageRating(c.UserContext(), itemID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"item_id": itemID, "average_rating": avg})
	}
}

// UpdateReview handles PUT /reviews/:id.
func UpdateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.ReviewUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		rev, err := svc.Update(c.UserContext(), id, payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rev)
	}
}

// PatchReview handles PATCH /reviews/:id.
func PatchReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.ReviewUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Patch(c.UserContext(), id, payload); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteReview handles DELETE /reviews/:id.
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func reviewFilterParams(c *fiber.Ctx) (*model.ReviewFilter, error) {
	filter := &model.ReviewFilter{}
	set := false

	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"item_id", &filter.ItemID},
		{"user_id", &filter.UserID},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errInvalidQueryInt(p.name)
		}
		*p.dst = &v
		set = true
	}

	if !set {
		return nil, nil
	}
	return filter, nil
}
