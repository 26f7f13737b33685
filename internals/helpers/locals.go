package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hostelhub_backend/internals/constants"
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, bool, error) {
	switch t := c.Locals(key).(type) {
	case uuid.UUID:
		return t, t != uuid.Nil, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, false, nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, false, err
		}
		return id, true, nil
	case nil:
		return uuid.Nil, false, nil
	default:
		return uuid.Nil, false, fiber.ErrBadRequest
	}
}

// GetUserIDFromToken reads the user id stored by the auth middleware.
// Returns 401 when not logged in, 400 when the stored value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok, err := uuidFromLocals(c, constants.LocalUserID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}
	return id, nil
}

// GetResidentIDFromToken returns nil for accounts not linked to a resident.
func GetResidentIDFromToken(c *fiber.Ctx) *uuid.UUID {
	id, ok, err := uuidFromLocals(c, constants.LocalResidentID)
	if err != nil || !ok {
		return nil
	}
	return &id
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(constants.LocalUserRole).(string)
	return role
}

// IsResidentOnly is true for callers that may only act on their own resident record.
func IsResidentOnly(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleResident
}

// ResidentScope pins resident callers to their own rows. Staff and admins
// get nil, meaning no restriction.
func ResidentScope(c *fiber.Ctx) (*uuid.UUID, error) {
	if !IsResidentOnly(c) {
		return nil, nil
	}
	rid := GetResidentIDFromToken(c)
	if rid == nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account is not linked to a resident")
	}
	return rid, nil
}
