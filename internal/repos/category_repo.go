package repos

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"productsapi/internal/domain"
)

type CategoryRepo struct {
	db *sqlx.DB
	b  sq.StatementBuilderType
	q  ProductQuery
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	b := statements(db)
	return &CategoryRepo{db: db, b: b, q: NewProductQuery(b)}
}

// List returns every category ordered by id with its live product count.
func (r *CategoryRepo) List(ctx context.Context) (out []domain.Category, err error) {
	ctx, s := span(ctx, "categories.list", "categories")
	defer func() { end(s, err) }()

	query, args, err := r.b.Select("c.id", "c.name", "c.description", "COUNT(p.id) AS products_count").
		From("categories c").
		LeftJoin("products p ON p.category_id = c.id").
		GroupBy("c.id", "c.name", "c.description").
		OrderBy("c.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	out = []domain.Category{}
	err = r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

// Get returns category id with all of its products embedded.
func (r *CategoryRepo) Get(ctx context.Context, id int64) (d domain.CategoryDetail, err error) {
	ctx, s := span(ctx, "categories.get", "categories")
	defer func() { end(s, err) }()

	query, args, err := r.b.Select("id", "name", "description").
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return d, err
	}
	if err = r.db.GetContext(ctx, &d.Category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.CategoryNotFound(id)
		}
		return d, err
	}

	query, args, err = r.q.ByCategory(id).ToSql()
	if err != nil {
		return d, err
	}
	d.Products = []domain.Product{}
	if err = r.db.SelectContext(ctx, &d.Products, query, args...); err != nil {
		return d, err
	}
	d.ProductsCount = int64(len(d.Products))
	return d, nil
}

// ExistsByName reports whether a category with name exists, ignoring case.
func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (ok bool, err error) {
	ctx, s := span(ctx, "categories.exists_by_name", "categories")
	defer func() { end(s, err) }()

	query, args, err := r.b.Select("COUNT(*)").
		From("categories").
		Where(sq.Expr("LOWER(name) = LOWER(?)", name)).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int64
	if err = r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a category. A unique index violation is reported as a
// conflict.
func (r *CategoryRepo) Create(ctx context.Context, name string, description *string) (c domain.Category, err error) {
	ctx, s := span(ctx, "categories.create", "categories")
	defer func() { end(s, err) }()

	query, args, err := r.b.Insert("categories").
		Columns("name", "description").
		Values(name, nullText(description)).
		Suffix("RETURNING id, name, description").
		ToSql()
	if err != nil {
		return c, err
	}
	if err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&c); err != nil {
		if classify(err) == uniqueViolation {
			err = domain.CategoryExists("")
		}
		return c, err
	}
	return c, nil
}

// Delete removes category id unless a product still references it. The guard
// lives in the statement itself; the follow-up reads only explain a miss.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (c domain.Category, err error) {
	ctx, s := span(ctx, "categories.delete", "categories")
	defer func() { end(s, err) }()

	query, args, err := r.b.Delete("categories").
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("NOT EXISTS (SELECT 1 FROM products WHERE category_id = ?)", id)).
		Suffix("RETURNING id, name, description").
		ToSql()
	if err != nil {
		return c, err
	}
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&c)
	switch {
	case err == nil:
		return c, nil
	case classify(err) == foreignKeyViolation:
		var n int64
		if n, err = r.countProducts(ctx, id); err != nil {
			return c, err
		}
		return c, domain.CategoryInUse(n)
	case !errors.Is(err, sql.ErrNoRows):
		return c, err
	}

	var exists int64
	query, args, err = r.b.Select("COUNT(*)").From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return c, err
	}
	if err = r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return c, err
	}
	if exists == 0 {
		return c, domain.CategoryNotFound(id)
	}
	n, err := r.countProducts(ctx, id)
	if err != nil {
		return c, err
	}
	return c, domain.CategoryInUse(n)
}

func (r *CategoryRepo) countProducts(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.b.Select("COUNT(*)").From("products").Where(sq.Eq{"category_id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.GetContext(ctx, &n, query, args...)
	return n, err
}
