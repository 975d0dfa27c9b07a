package repos

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"productsapi/internal/domain"
)

var productColumns = []string{
	"p.id", "p.title", "p.price", "p.description", "p.category_id", "p.image_url",
	"c.name AS category_name", "c.description AS category_description",
}

const categoryJoin = "categories c ON c.id = p.category_id"

// Ordering decides the ORDER BY of a product listing.
type Ordering func(sq.SelectBuilder) sq.SelectBuilder

// OrderByID lists products in insertion order.
func OrderByID(b sq.SelectBuilder) sq.SelectBuilder {
	return b.OrderBy("p.id")
}

// OrderBySearchRank puts title matches before description-only matches, then
// falls back to id.
func OrderBySearchRank(search string) Ordering {
	pattern := likePattern(search)
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderByClause(
			"CASE WHEN LOWER(p.title) LIKE ? THEN 1 WHEN LOWER(p.description) LIKE ? THEN 2 ELSE 3 END",
			pattern, pattern,
		).OrderBy("p.id")
	}
}

func orderingFor(f domain.ProductFilter) Ordering {
	if f.HasSearch() {
		return OrderBySearchRank(f.Search)
	}
	return OrderByID
}

func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// productPredicate ANDs the search and category conditions present in f. It
// returns nil when f filters nothing.
func productPredicate(f domain.ProductFilter) sq.Sqlizer {
	var where sq.And
	if f.HasSearch() {
		pattern := likePattern(f.Search)
		where = append(where, sq.Or{
			sq.Expr("LOWER(p.title) LIKE ?", pattern),
			sq.Expr("LOWER(p.description) LIKE ?", pattern),
		})
	}
	if f.CategoryID != nil {
		where = append(where, sq.Eq{"p.category_id": *f.CategoryID})
	}
	if len(where) == 0 {
		return nil
	}
	return where
}

// ProductQuery builds every statement that reads products.
type ProductQuery struct {
	b sq.StatementBuilderType
}

func NewProductQuery(b sq.StatementBuilderType) ProductQuery {
	return ProductQuery{b: b}
}

func (q ProductQuery) base(columns ...string) sq.SelectBuilder {
	return q.b.Select(columns...).From("products p").LeftJoin(categoryJoin)
}

func (q ProductQuery) filtered(b sq.SelectBuilder, f domain.ProductFilter) sq.SelectBuilder {
	if pred := productPredicate(f); pred != nil {
		b = b.Where(pred)
	}
	return b
}

// Count counts the products matching f, ignoring pagination.
func (q ProductQuery) Count(f domain.ProductFilter) sq.SelectBuilder {
	return q.filtered(q.base("COUNT(*)"), f)
}

// Page selects one page of f ordered by the strategy f calls for. Limit and
// offset are bound as parameters so any integer is passed through unchanged.
func (q ProductQuery) Page(f domain.ProductFilter, limit, offset int) sq.SelectBuilder {
	b := orderingFor(f)(q.filtered(q.base(productColumns...), f))
	return b.Suffix("LIMIT ? OFFSET ?", limit, offset)
}

// All selects the unfiltered collection ordered by id.
func (q ProductQuery) All() sq.SelectBuilder {
	return OrderByID(q.base(productColumns...))
}

func (q ProductQuery) ByID(id int64) sq.SelectBuilder {
	return q.base(productColumns...).Where(sq.Eq{"p.id": id})
}

func (q ProductQuery) ByCategory(categoryID int64) sq.SelectBuilder {
	return OrderByID(q.filtered(q.base(productColumns...), domain.ProductFilter{CategoryID: &categoryID}))
}
