package services

import (
	"context"

	"productsapi/internal/domain"
	"productsapi/internal/validate"
)

type ProductStore interface {
	List(ctx context.Context, f domain.ProductFilter, page domain.PageRequest) ([]domain.Product, int64, error)
	All(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductService struct {
	Prods ProductStore
}

func NewProductService(prods ProductStore) *ProductService {
	return &ProductService{Prods: prods}
}

// List returns one page of matching products with its pagination descriptor.
func (s *ProductService) List(ctx context.Context, f domain.ProductFilter, page domain.PageRequest) (domain.ProductPage, error) {
	page = page.Normalize()
	rows, total, err := s.Prods.List(ctx, f, page)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return domain.ProductPage{Products: rows, Pagination: domain.NewPagination(page, total)}, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (domain.ProductMutation, error) {
	in, err := clean(in)
	if err != nil {
		return domain.ProductMutation{}, err
	}
	p, err := s.Prods.Create(ctx, in)
	if err != nil {
		return domain.ProductMutation{}, err
	}
	return s.mutation(ctx, p)
}

// Update overwrites every mutable field of product id.
func (s *ProductService) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.ProductMutation, error) {
	in, err := clean(in)
	if err != nil {
		return domain.ProductMutation{}, err
	}
	p, err := s.Prods.Update(ctx, id, in)
	if err != nil {
		return domain.ProductMutation{}, err
	}
	return s.mutation(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) (domain.ProductDeletion, error) {
	if err := s.Prods.Delete(ctx, id); err != nil {
		return domain.ProductDeletion{}, err
	}
	all, err := s.refreshed(ctx)
	if err != nil {
		return domain.ProductDeletion{}, err
	}
	return domain.ProductDeletion{ID: id, Products: all}, nil
}

func (s *ProductService) mutation(ctx context.Context, p domain.Product) (domain.ProductMutation, error) {
	all, err := s.refreshed(ctx)
	if err != nil {
		return domain.ProductMutation{}, err
	}
	return domain.ProductMutation{Product: p, Products: all}, nil
}

// refreshed is the collection every mutation answers with: unfiltered,
// unpaginated, ordered by id.
func (s *ProductService) refreshed(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.All(ctx)
}

// clean trims the text fields, rounds the price to cents and rejects a blank
// title or a non-positive price. The category reference is not checked.
func clean(in domain.ProductInput) (domain.ProductInput, error) {
	title, err := validate.Title(in.Title)
	if err != nil {
		return in, domain.Validation("Product title " + err.Error())
	}
	in.Price = in.Price.Round(2)
	if !validate.Price(in.Price) {
		return in, domain.Validation("Product price must be greater than 0")
	}
	in.Title = title
	in.Description = validate.Text(in.Description)
	in.ImageURL = validate.Text(in.ImageURL)
	return in, nil
}
