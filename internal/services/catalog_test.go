package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsapi/internal/domain"
	"productsapi/internal/repos"
	"productsapi/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func catalog(t *testing.T) (*services.CategoryService, *services.ProductService) {
	db := memdb(t)
	return services.NewCategoryService(repos.NewCategoryRepo(db)),
		services.NewProductService(repos.NewProductRepo(db))
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCategoryCreateTrimsAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	cats, _ := catalog(t)

	desc := "  "
	c, err := cats.Create(ctx, "  Shoes ", &desc)
	require.NoError(t, err)
	assert.Equal(t, "Shoes", c.Name)
	assert.Nil(t, c.Description)

	for _, name := range []string{"shoes", " Shoes ", "SHOES"} {
		_, err := cats.Create(ctx, name, nil)
		require.ErrorIs(t, err, domain.ErrConflict, name)
	}
	_, err = cats.Create(ctx, "shoes", nil)
	assert.EqualError(t, err, `A category with the name "shoes" already exists`)

	list, err := cats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategoryCreateRequiresName(t *testing.T) {
	cats, _ := catalog(t)
	_, err := cats.Create(context.Background(), "   ", nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Category name is required")
}

func TestCategoryNameTooLong(t *testing.T) {
	cats, _ := catalog(t)
	_, err := cats.Create(context.Background(), strings.Repeat("n", 256), nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Category name must be at most 255 characters")
}

func TestCategoryDuplicateDiffersOnlyInAccentedCase(t *testing.T) {
	ctx := context.Background()
	cats, _ := catalog(t)
	_, err := cats.Create(ctx, "Calzado Niño", nil)
	require.NoError(t, err)

	_, err = cats.Create(ctx, "CALZADO NIÑO", nil)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, `A category with the name "CALZADO NIÑO" already exists`)
}

func TestCategoryDeleteRules(t *testing.T) {
	ctx := context.Background()
	cats, prods := catalog(t)

	empty, err := cats.Create(ctx, "Empty", nil)
	require.NoError(t, err)
	full, err := cats.Create(ctx, "Full", nil)
	require.NoError(t, err)
	for _, title := range []string{"A", "B"} {
		_, err := prods.Create(ctx, domain.ProductInput{Title: title, Price: price("1"), CategoryID: &full.ID})
		require.NoError(t, err)
	}

	_, err = cats.Delete(ctx, full.ID)
	require.ErrorIs(t, err, domain.ErrBlocked)
	assert.Contains(t, err.Error(), "2 associated products")

	got, err := cats.Delete(ctx, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, "Empty", got.Name)

	list, err := cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Full", list[0].Name)
	assert.Equal(t, int64(2), list[0].ProductsCount)
}

func TestProductListPagination(t *testing.T) {
	ctx := context.Background()
	_, prods := catalog(t)
	for i := 0; i < 25; i++ {
		_, err := prods.Create(ctx, domain.ProductInput{Title: "Item", Price: price("3.50")})
		require.NoError(t, err)
	}

	cases := []struct {
		page, limit      int
		rows, totalPages int
		next, prev       bool
	}{
		{1, 10, 10, 3, true, false},
		{2, 10, 10, 3, true, true},
		{3, 10, 5, 3, false, true},
		{4, 10, 0, 3, false, true},
		{1, 25, 25, 1, false, false},
		{1, 7, 7, 4, true, false},
	}
	for _, tc := range cases {
		pg, err := prods.List(ctx, domain.ProductFilter{}, domain.PageRequest{Page: tc.page, Limit: tc.limit})
		require.NoError(t, err)
		assert.Len(t, pg.Products, tc.rows, "page %d limit %d", tc.page, tc.limit)
		assert.Equal(t, domain.Pagination{
			CurrentPage:   tc.page,
			TotalPages:    tc.totalPages,
			TotalProducts: 25,
			Limit:         tc.limit,
			HasNextPage:   tc.next,
			HasPrevPage:   tc.prev,
		}, pg.Pagination)
	}

	pg, err := prods.List(ctx, domain.ProductFilter{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, pg.Pagination.CurrentPage)
	assert.Equal(t, domain.DefaultLimit, pg.Pagination.Limit)
}

func TestProductSearchOrdersTitleMatchesFirst(t *testing.T) {
	ctx := context.Background()
	_, prods := catalog(t)
	inputs := []domain.ProductInput{
		{Title: "Jeans", Price: price("40"), Description: strp("goes with any shirt")},
		{Title: "Socks", Price: price("5")},
		{Title: "Oxford Shirt", Price: price("35")},
	}
	for _, in := range inputs {
		_, err := prods.Create(ctx, in)
		require.NoError(t, err)
	}

	pg, err := prods.List(ctx, domain.ProductFilter{Search: "shirt"}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, pg.Products, 2)
	assert.Equal(t, "Oxford Shirt", pg.Products[0].Title)
	assert.Equal(t, "Jeans", pg.Products[1].Title)
	assert.Equal(t, int64(2), pg.Pagination.TotalProducts)
}

func TestProductFilterByEmptyCategory(t *testing.T) {
	ctx := context.Background()
	cats, prods := catalog(t)
	c, err := cats.Create(ctx, "Nothing here", nil)
	require.NoError(t, err)
	_, err = prods.Create(ctx, domain.ProductInput{Title: "Elsewhere", Price: price("1")})
	require.NoError(t, err)

	pg, err := prods.List(ctx, domain.ProductFilter{CategoryID: &c.ID}, domain.PageRequest{})
	require.NoError(t, err)
	assert.NotNil(t, pg.Products)
	assert.Empty(t, pg.Products)
	assert.Equal(t, int64(0), pg.Pagination.TotalProducts)
	assert.Equal(t, 0, pg.Pagination.TotalPages)
}

func TestProductMutationsReturnRefreshedCollection(t *testing.T) {
	ctx := context.Background()
	_, prods := catalog(t)

	first, err := prods.Create(ctx, domain.ProductInput{Title: " Runner ", Price: price("49.99"), ImageURL: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "Runner", first.Product.Title)
	assert.Nil(t, first.Product.ImageURL)
	require.Len(t, first.Products, 1)

	second, err := prods.Create(ctx, domain.ProductInput{Title: "Trail", Price: price("59")})
	require.NoError(t, err)
	require.Len(t, second.Products, 2)
	assert.Equal(t, first.Product.ID, second.Products[0].ID)

	up, err := prods.Update(ctx, first.Product.ID, domain.ProductInput{Title: "Runner v2", Price: price("44")})
	require.NoError(t, err)
	assert.Equal(t, "Runner v2", up.Product.Title)
	assert.Equal(t, "Runner v2", up.Products[0].Title)

	del, err := prods.Delete(ctx, second.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Product.ID, del.ID)
	require.Len(t, del.Products, 1)
}

func TestProductUpdateMissingLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	_, prods := catalog(t)
	_, err := prods.Create(ctx, domain.ProductInput{Title: "Keep", Price: price("1")})
	require.NoError(t, err)

	_, err = prods.Update(ctx, 77, domain.ProductInput{Title: "Ghost", Price: price("2")})
	require.ErrorIs(t, err, domain.ErrNotFound)

	pg, err := prods.List(ctx, domain.ProductFilter{}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, pg.Products, 1)
	assert.Equal(t, "Keep", pg.Products[0].Title)
}

func TestProductCreateWithUnknownCategory(t *testing.T) {
	ctx := context.Background()
	_, prods := catalog(t)
	missing := int64(404)

	m, err := prods.Create(ctx, domain.ProductInput{Title: "Stray", Price: price("9"), CategoryID: &missing})
	require.NoError(t, err)
	got, err := prods.Get(ctx, m.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, &missing, got.CategoryID)
	assert.Nil(t, got.CategoryName)
}

func TestProductValidation(t *testing.T) {
	_, prods := catalog(t)
	cases := []struct {
		name string
		in   domain.ProductInput
		msg  string
	}{
		{"blank title", domain.ProductInput{Title: "  ", Price: price("1")}, "Product title is required"},
		{"long title", domain.ProductInput{Title: strings.Repeat("x", 256), Price: price("1")}, "Product title must be at most 255 characters"},
		{"zero price", domain.ProductInput{Title: "x"}, "Product price must be greater than 0"},
		{"negative price", domain.ProductInput{Title: "x", Price: price("-2")}, "Product price must be greater than 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := prods.Create(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tc.msg)
			_, err = prods.Update(context.Background(), 1, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

type failingStore struct {
	services.ProductStore
	created domain.Product
}

func (f failingStore) Create(context.Context, domain.ProductInput) (domain.Product, error) {
	return f.created, nil
}

func (failingStore) All(context.Context) ([]domain.Product, error) {
	return nil, errors.New("connection reset")
}

func TestProductCreateSurfacesRefreshFailure(t *testing.T) {
	svc := services.NewProductService(failingStore{created: domain.Product{ID: 1}})
	_, err := svc.Create(context.Background(), domain.ProductInput{Title: "x", Price: price("1")})
	assert.EqualError(t, err, "connection reset")
}

func strp(s string) *string { return &s }
