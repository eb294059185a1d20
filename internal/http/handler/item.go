package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"marketapi/internal/model"
	"marketapi/internal/service"
)

// CreateItem handles POST /items. The owner is the authenticated caller.
func CreateItem(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload model.ItemCreate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if payload.Title == "" {
			return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
		}
		payload.UserID = currentUserID(c)
		item, err := svc.Create(c.UserContext(), payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GetItem handles GET /items/:id.
func GetItem(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		item, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// ListItems handles GET /items with optional search filters.
func ListItems(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		filter, err := itemFilterParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", err.Error())
		}
		items, err := svc.List(c.UserContext(), filter, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// ListMyItems handles GET /items/my, the caller's own listings.
func ListMyItems(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		items, err := svc.ListForUser(c.UserContext(), currentUserID(c), skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// ListUserItems handles GET /items/user/:id, any user's listings.
func ListUserItems(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		items, err := svc.ListForUser(c.UserContext(), userID, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// UpdateItem handles PUT /items/:id.
func UpdateItem(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.ItemUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		item, err := svc.Update(c.UserContext(), id, payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// PatchItem handles PATCH /items/:id.
func PatchItem(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.ItemUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Patch(c.UserContext(), id, payload); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteItem handles DELETE /items/:id.
func DeleteItem(svc service.ItemService) fiber.Handler {
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

// UploadItemPhoto handles POST /items/:id/photo (multipart/form-data, field
// name: photo).
func UploadItemPhoto(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		fh, err := c.FormFile("photo")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "PHOTO_REQUIRED", "photo file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		item, err := svc.AttachPhoto(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GetItemPhotoURL handles GET /items/:id/photo-url, returning a presigned URL.
func GetItemPhotoURL(svc service.ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.PhotoURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

func itemFilterParams(c *fiber.Ctx) (*model.ItemFilter, error) {
	filter := &model.ItemFilter{}
	set := false

	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"category_id", &filter.CategoryID},
		{"location_id", &filter.LocationID},
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

	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidQueryBool
		}
		filter.IsActive = &v
		set = true
	}

	if !set {
		return nil, nil
	}
	return filter, nil
}
