package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketapi/internal/model"
	"marketapi/internal/service"
)

// SendMessage handles POST /messages. The sender is always the authenticated
// caller.
func SendMessage(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload model.MessageCreate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if payload.Text == "" {
			return writeError(c, fiber.StatusBadRequest, "TEXT_REQUIRED", "text is required")
		}
		msg, err := svc.Send(c.UserContext(), payload, currentUserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	}
}

// GetMessage handles GET /messages/:id.
func GetMessage(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		msg, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(msg)
	}
}

// ListMyMessages handles GET /messages, the caller's sent and received
// messages, newest first.
func ListMyMessages(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		msgs, err := svc.ListForUser(c.UserContext(), currentUserID(c), skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(msgs)
	}
}

// ListUserMessages handles GET /messages/user/:id, any user's sent and
// received messages, newest first.
func ListUserMessages(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		msgs, err := svc.ListForUser(c.UserContext(), userID, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(msgs)
	}
}

// ListAllMessages handles GET /messages/all, every message in the system,
// paginated.
func ListAllMessages(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}
		msgs, err := svc.List(c.UserContext(), skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(msgs)
	}
}

// UpdateMessage handles PUT /messages/:id.
func UpdateMessage(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.MessageUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		msg, err := svc.Update(c.UserContext(), id, payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(msg)
	}
}

// PatchMessage handles PATCH /messages/:id, typically marking a message read.
func PatchMessage(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.MessageUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Patch(c.UserContext(), id, payload); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteMessage handles DELETE /messages/:id. Only the sender may delete.
func DeleteMessage(svc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.DeleteAsUser(c.UserContext(), id, currentUserID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
