package services

import (
	"context"

	"productsapi/internal/domain"
	"productsapi/internal/validate"
)

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (domain.CategoryDetail, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string, description *string) (domain.Category, error)
	Delete(ctx context.Context, id int64) (domain.Category, error)
}

type CategoryService struct {
	Cats CategoryStore
}

func NewCategoryService(cats CategoryStore) *CategoryService {
	return &CategoryService{Cats: cats}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.CategoryDetail, error) {
	return s.Cats.Get(ctx, id)
}

// Create adds a category whose trimmed name is not yet taken, ignoring case.
// The lookup gives the friendly message; the unique index still decides races.
func (s *CategoryService) Create(ctx context.Context, name string, description *string) (domain.Category, error) {
	name, err := validate.Name(name)
	if err != nil {
		return domain.Category{}, domain.Validation("Category name " + err.Error())
	}
	exists, err := s.Cats.ExistsByName(ctx, name)
	if err != nil {
		return domain.Category{}, err
	}
	if exists {
		return domain.Category{}, domain.CategoryExists(name)
	}
	return s.Cats.Create(ctx, name, validate.Text(description))
}

// Delete removes a category that no product references.
func (s *CategoryService) Delete(ctx context.Context, id int64) (domain.Category, error) {
	return s.Cats.Delete(ctx, id)
}
