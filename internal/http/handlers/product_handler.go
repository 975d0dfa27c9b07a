package handlers

import (
	"github.com/gofiber/fiber/v2"

	"productsapi/internal/domain"
	applog "productsapi/internal/log"
	"productsapi/internal/services"
	"productsapi/internal/validate"
)

type ProductHandler struct {
	Prods *services.ProductService
}

// GET /api/products?page=&limit=&search=&category_id=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	catID, valid := validate.OptionalInt(c.Query("category_id"))
	if !valid {
		applog.Security(c, "validation.fail", map[string]any{"field": "category_id", "value": c.Query("category_id")})
		return domain.Validation("category_id must be an integer")
	}
	f := domain.ProductFilter{Search: c.Query("search"), CategoryID: catID}
	page := domain.PageRequest{
		Page:  validate.IntOr(c.Query("page"), domain.DefaultPage),
		Limit: validate.IntOr(c.Query("limit"), domain.DefaultLimit),
	}
	res, err := h.Prods.List(c.UserContext(), f, page)
	if err != nil {
		logFailure(c, "product.list.fail", err)
		return failed("Error retrieving products", err)
	}
	return respond(c, fiber.StatusOK, "Products retrieved successfully", res.Products,
		fiber.Map{"pagination": res.Pagination})
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "Product")
	if err != nil {
		return err
	}
	p, err := h.Prods.Get(c.UserContext(), id)
	if err != nil {
		logFailure(c, "product.get.fail", err)
		return failed("Error retrieving product", err)
	}
	return respond(c, fiber.StatusOK, "Product retrieved successfully", p, nil)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var body productBody
	if err := parseBody(c, &body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return err
	}
	m, err := h.Prods.Create(c.UserContext(), body.input())
	if err != nil {
		logFailure(c, "product.create.fail", err)
		return failed("Error creating product", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": m.Product.ID})
	return respond(c, fiber.StatusCreated, "Product created successfully", m.Product,
		fiber.Map{"products": m.Products})
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "Product")
	if err != nil {
		return err
	}
	var body productBody
	if err := parseBody(c, &body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return err
	}
	m, err := h.Prods.Update(c.UserContext(), id, body.input())
	if err != nil {
		logFailure(c, "product.update.fail", err)
		return failed("Error updating product", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return respond(c, fiber.StatusOK, "Product updated successfully", m.Product,
		fiber.Map{"products": m.Products})
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "Product")
	if err != nil {
		return err
	}
	d, err := h.Prods.Delete(c.UserContext(), id)
	if err != nil {
		logFailure(c, "product.delete.fail", err)
		return failed("Error deleting product", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return respond(c, fiber.StatusOK, "Product deleted successfully", nil,
		fiber.Map{"id": d.ID, "products": d.Products})
}

// logFailure writes validation rejections as security events and everything
// else that is not a plain miss or conflict as an error.
func logFailure(c *fiber.Ctx, action string, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": err.Error()})
	case 0:
		applog.Error(c, action, err, nil)
	}
}
