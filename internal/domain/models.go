package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
	ProductsCount int64   `db:"products_count" json:"products_count"`
}

// CategoryDetail is a category with every product that references it.
type CategoryDetail struct {
	Category
	Products []Product `json:"products"`
}

// Product is always read joined to its category; CategoryName and
// CategoryDescription stay nil when category_id is null or dangling.
type Product struct {
	ID                  int64   `db:"id" json:"id"`
	Title               string  `db:"title" json:"title"`
	Price               Money   `db:"price" json:"price"`
	Description         *string `db:"description" json:"description"`
	CategoryID          *int64  `db:"category_id" json:"category_id"`
	ImageURL            *string `db:"image_url" json:"image_url"`
	CategoryName        *string `db:"category_name" json:"category_name"`
	CategoryDescription *string `db:"category_description" json:"category_description"`
}

// ProductInput carries the five mutable product fields.
type ProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description *string
	CategoryID  *int64
	ImageURL    *string
}

type ProductFilter struct {
	Search     string
	CategoryID *int64
}

func (f ProductFilter) HasSearch() bool { return f.Search != "" }

type ProductPage struct {
	Products   []Product
	Pagination Pagination
}

// ProductMutation is what create and update hand back: the affected row and
// the whole refreshed collection.
type ProductMutation struct {
	Product  Product
	Products []Product
}

type ProductDeletion struct {
	ID       int64
	Products []Product
}
