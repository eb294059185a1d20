package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketapi/internal/model"
	"marketapi/internal/service"
)

// CreateLocation handles POST /locations.
func CreateLocation(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload model.LocationCreate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if payload.City == "" || payload.Region == "" {
			return writeError(c, fiber.StatusBadRequest, "CITY_REGION_REQUIRED", "city and region are required")
		}
		loc, err := svc.Create(c.UserContext(), payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(loc)
	}
}

// GetLocation handles GET /locations/:id.
func GetLocation(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		loc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(loc)
	}
}

// ListLocations handles GET /locations with optional city/region filters.
func ListLocations(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", err.Error())
		}

		var filter *model.LocationFilter
		if city, region := c.Query("city"), c.Query("region"); city != "" || region != "" {
			filter = &model.LocationFilter{}
			if city != "" {
				filter.City = &city
			}
			if region != "" {
				filter.Region = &region
			}
		}

		locs, err := svc.List(c.UserContext(), filter, skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(locs)
	}
}

// UpdateLocation handles PUT /locations/:id.
func UpdateLocation(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.LocationUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		loc, err := svc.Update(c.UserContext(), id, payload)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(loc)
	}
}

// PatchLocation handles PATCH /locations/:id.
func PatchLocation(svc service.LocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var payload model.LocationUpdate
		if err := c.BodyParser(&payload); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Patch(c.UserContext(), id, payload); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteLocation handles DELETE /locations/:id.
func DeleteLocation(svc service.LocationService) fiber.Handler {
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
