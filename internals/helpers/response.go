package helper

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostelhub_backend/internals/helpers/apperror"
)

// ValidationError renders validator.ValidationErrors as a 422 field map.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := jsonFieldName(fe)
		fields[name] = append(fields[name], ruleMessage(fe))
	}
	return JsonValidationError(c, fields)
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		ns = fe.Field()
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "phone":
		return "must be a valid phone number"
	case "gmail":
		return "only Gmail addresses (...@gmail.com) are allowed"
	default:
		return "failed rule " + fe.Tag()
	}
}

// StatusOf maps an apperror kind to its HTTP status.
func StatusOf(e *apperror.Error) int {
	switch e.Kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindInvalid:
		return fiber.StatusUnprocessableEntity
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindBusinessRule:
		switch e.Code {
		case apperror.CodeDuplicateIdentity, apperror.CodeDuplicatePaymentPeriod,
			apperror.CodeDuplicateRoomNumber, apperror.CodeDuplicateEmail,
			apperror.CodeDuplicateRecord:
			return fiber.StatusConflict
		}
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// FromError turns a service error into the standard error envelope.
// *fiber.Error and gorm.ErrRecordNotFound are honored as well.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := apperror.As(err); ok {
		return JsonErrorCode(c, StatusOf(e), e.Code, e.Error())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "record not found")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return JsonError(c, fiber.StatusGatewayTimeout, "request timed out")
	}

	// driver and SQL text stays in the log
	zap.L().Error("unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, "")
}
