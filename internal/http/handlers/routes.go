package handlers

import "github.com/gofiber/fiber/v2"

func Register(app *fiber.App, deps *Deps) {
	app.Get("/", Banner)
	app.Get("/health", Health)

	api := app.Group("/api")

	cats := api.Group("/categories")
	cats.Get("/", deps.CategoryHandler.List)
	cats.Get("/:id", deps.CategoryHandler.Get)
	cats.Post("/", deps.CategoryHandler.Create)
	cats.Delete("/:id", deps.CategoryHandler.Delete)

	prods := api.Group("/products")
	prods.Get("/", deps.ProductHandler.List)
	prods.Get("/:id", deps.ProductHandler.Get)
	prods.Post("/", deps.ProductHandler.Create)
	prods.Put("/:id", deps.ProductHandler.Update)
	prods.Delete("/:id", deps.ProductHandler.Delete)

	app.Use(NotFound)
}
