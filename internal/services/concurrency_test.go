package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsapi/internal/domain"
	"productsapi/internal/repos"
	"productsapi/internal/services"
)

func TestConcurrentWritesOnFileStore(t *testing.T) {
	db, err := repos.OpenDB("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(20)

	ctx := context.Background()
	cats := services.NewCategoryService(repos.NewCategoryRepo(db))
	prods := services.NewProductService(repos.NewProductRepo(db))

	const writers = 40
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := prods.Create(ctx, domain.ProductInput{Title: fmt.Sprintf("Item %d", i), Price: price("1.50")})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	pg, err := prods.List(ctx, domain.ProductFilter{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(writers), pg.Pagination.TotalProducts)

	const racers = 10
	outcomes := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cats.Create(ctx, "Shoes", nil)
			outcomes <- err
		}()
	}
	wg.Wait()
	close(outcomes)
	created, conflicts := 0, 0
	for err := range outcomes {
		switch {
		case err == nil:
			created++
		case domain.KindOf(err) == domain.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, racers-1, conflicts)

	list, err := cats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
