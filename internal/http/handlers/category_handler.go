package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "productsapi/internal/log"
	"productsapi/internal/services"
)

type CategoryHandler struct {
	Cats *services.CategoryService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Cats.List(c.UserContext())
	if err != nil {
		applog.Error(c, "category.list.fail", err, nil)
		return failed("Error retrieving categories", err)
	}
	return respond(c, fiber.StatusOK, "Categories retrieved successfully", cats, nil)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "Category")
	if err != nil {
		return err
	}
	cat, err := h.Cats.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "category.get.fail", "Error retrieving category", err)
	}
	return respond(c, fiber.StatusOK, "Category retrieved successfully", cat, nil)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var body categoryBody
	if err := parseBody(c, &body); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return err
	}
	cat, err := h.Cats.Create(c.UserContext(), body.Name, body.Description)
	if err != nil {
		return h.fail(c, "category.create.fail", "Error creating category", err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return respond(c, fiber.StatusCreated, "Category created successfully", cat, nil)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "Category")
	if err != nil {
		return err
	}
	cat, err := h.Cats.Delete(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "category.delete.fail", "Error deleting category", err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return respond(c, fiber.StatusOK, "Category deleted successfully", cat, nil)
}

func (h *CategoryHandler) fail(c *fiber.Ctx, action, title string, err error) error {
	logFailure(c, action, err)
	return failed(title, err)
}
