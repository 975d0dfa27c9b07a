package repos

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"productsapi/internal/domain"
)

type ProductRepo struct {
	db *sqlx.DB
	b  sq.StatementBuilderType
	q  ProductQuery
}

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	b := statements(db)
	return &ProductRepo{db: db, b: b, q: NewProductQuery(b)}
}

// List returns one page of the products matching f and the number of matches
// across all pages.
func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter, page domain.PageRequest) (out []domain.Product, total int64, err error) {
	ctx, s := span(ctx, "products.list", "products")
	defer func() { end(s, err) }()

	query, args, err := r.q.Count(f).ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err = r.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, err
	}

	query, args, err = r.q.Page(f, page.Limit, page.Offset()).ToSql()
	if err != nil {
		return nil, 0, err
	}
	out = []domain.Product{}
	if err = r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// All returns every product ordered by id.
func (r *ProductRepo) All(ctx context.Context) (out []domain.Product, err error) {
	ctx, s := span(ctx, "products.all", "products")
	defer func() { end(s, err) }()

	query, args, err := r.q.All().ToSql()
	if err != nil {
		return nil, err
	}
	out = []domain.Product{}
	err = r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

func (r *ProductRepo) ByCategory(ctx context.Context, categoryID int64) (out []domain.Product, err error) {
	ctx, s := span(ctx, "products.by_category", "products")
	defer func() { end(s, err) }()

	query, args, err := r.q.ByCategory(categoryID).ToSql()
	if err != nil {
		return nil, err
	}
	out = []domain.Product{}
	err = r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (p domain.Product, err error) {
	ctx, s := span(ctx, "products.get", "products")
	defer func() { end(s, err) }()

	return r.get(ctx, id)
}

func (r *ProductRepo) get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	query, args, err := r.q.ByID(id).ToSql()
	if err != nil {
		return p, err
	}
	err = r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.ProductNotFound(id)
	}
	return p, err
}

// Create inserts in and reads the row back joined to its category.
func (r *ProductRepo) Create(ctx context.Context, in domain.ProductInput) (p domain.Product, err error) {
	ctx, s := span(ctx, "products.create", "products")
	defer func() { end(s, err) }()

	query, args, err := r.b.Insert("products").
		Columns("title", "price", "description", "category_id", "image_url").
		Values(in.Title, in.Price, nullText(in.Description), nullInt(in.CategoryID), nullText(in.ImageURL)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return p, err
	}
	var id int64
	if err = r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return p, err
	}
	return r.get(ctx, id)
}

// Update overwrites all mutable fields of product id.
func (r *ProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) (p domain.Product, err error) {
	ctx, s := span(ctx, "products.update", "products")
	defer func() { end(s, err) }()

	query, args, err := r.b.Update("products").
		Set("title", in.Title).
		Set("price", in.Price).
		Set("description", nullText(in.Description)).
		Set("category_id", nullInt(in.CategoryID)).
		Set("image_url", nullText(in.ImageURL)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return p, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return p, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return p, err
	}
	if n == 0 {
		return p, domain.ProductNotFound(id)
	}
	return r.get(ctx, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (err error) {
	ctx, s := span(ctx, "products.delete", "products")
	defer func() { end(s, err) }()

	query, args, err := r.b.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ProductNotFound(id)
	}
	return nil
}
