package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"productsapi/internal/domain"
)

type categoryBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// optionalID accepts a JSON number, a numeric string, null or "".
type optionalID struct {
	v *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		o.v = nil
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			o.v = nil
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("category id %s is not an integer", b)
	}
	o.v = &n
	return nil
}

// productBody takes the admin UI's camelCase keys and the snake_case column
// names; camelCase wins when both are sent.
type productBody struct {
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Description   *string         `json:"description"`
	CategoryID    optionalID      `json:"categoryId"`
	CategoryIDAlt optionalID      `json:"category_id"`
	ImageURL      *string         `json:"imageUrl"`
	ImageURLAlt   *string         `json:"image_url"`
}

func (b productBody) input() domain.ProductInput {
	in := domain.ProductInput{
		Title:       b.Title,
		Price:       b.Price,
		Description: b.Description,
		CategoryID:  b.CategoryID.v,
		ImageURL:    b.ImageURL,
	}
	if in.CategoryID == nil {
		in.CategoryID = b.CategoryIDAlt.v
	}
	if in.ImageURL == nil {
		in.ImageURL = b.ImageURLAlt
	}
	return in
}

// parseBody decodes the request body with the app's JSON decoder. The content
// type is not checked.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return invalidBody(err)
	}
	return nil
}
