package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"productsapi/internal/domain"
	applog "productsapi/internal/log"
	"productsapi/internal/validate"
)

// opError is a store failure labelled with the operation that hit it.
type opError struct {
	title string
	err   error
}

func (e *opError) Error() string { return e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

// failed labels err with title unless it already is a domain error, which
// carries its own title.
func failed(title string, err error) error {
	if domain.KindOf(err) != 0 {
		return err
	}
	return &opError{title: title, err: err}
}

func invalidBody(err error) error {
	return &domain.Error{Kind: domain.KindValidation, Title: "Invalid JSON body", Message: err.Error()}
}

func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindBlocked:
		return fiber.StatusBadRequest
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error as {"error", "message"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		de *domain.Error
		oe *opError
		fe *fiber.Error
	)
	status, title := fiber.StatusInternalServerError, "Internal server error"
	switch {
	case errors.As(err, &de):
		status, title = statusFor(de.Kind), de.Title
	case errors.As(err, &oe):
		title = oe.title
	case errors.As(err, &fe):
		status = fe.Code
		switch fe.Code {
		case fiber.StatusRequestEntityTooLarge:
			title = "Request entity too large"
		case fiber.StatusTooManyRequests:
			title = "Too many requests"
		default:
			title = utils.StatusMessage(fe.Code)
		}
	default:
		applog.Error(c, "server.error", err, nil)
	}
	return c.Status(status).JSON(fiber.Map{"error": title, "message": err.Error()})
}

// respond writes the success envelope; extra keys are merged in.
func respond(c *fiber.Ctx, status int, message string, data any, extra fiber.Map) error {
	body := fiber.Map{"message": message}
	if data != nil {
		body["data"] = data
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func pathID(c *fiber.Ctx, what string) (int64, error) {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		applog.Security(c, "validation.fail", map[string]any{"field": "id", "value": c.Params("id")})
		return 0, domain.Validation(what + " id must be a positive integer")
	}
	return id, nil
}
