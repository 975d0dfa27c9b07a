package handlers

import (
	"github.com/jmoiron/sqlx"

	"productsapi/internal/repos"
	"productsapi/internal/services"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)

	return &Deps{
		CategoryHandler: &CategoryHandler{Cats: services.NewCategoryService(catRepo)},
		ProductHandler:  &ProductHandler{Prods: services.NewProductService(prodRepo)},
	}
}
