package repos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"productsapi/internal/config"
)

const (
	sqliteDriver   = "sqlite"
	postgresDriver = "pgx"
)

// SQLite's built-in lower() folds ASCII only. Replacing it keeps the
// LOWER(name) index, the name lookup and search case-insensitive for any
// letter, the way PostgreSQL already is.
func init() {
	if err := sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower); err != nil {
		panic(err)
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

// sqlitePragmas let concurrent writers wait for the file lock instead of
// failing with SQLITE_BUSY, and let readers proceed while a write is open.
// Each is keyed by the name that marks it as already set in a DSN.
var sqlitePragmas = []struct{ key, param string }{
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"journal_mode", "_pragma=journal_mode(WAL)"},
	{"_txlock", "_txlock=immediate"},
}

// sqliteDSN adds the locking pragmas to a file DSN unless the caller already
// set them. In-memory databases are left alone.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, ":memory:") {
		return dsn
	}
	for _, p := range sqlitePragmas {
		if strings.Contains(dsn, p.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}

// OpenDB connects to the configured store and makes sure the schema exists.
func OpenDB(driverName, dsn string) (*sqlx.DB, error) {
	name, schema, err := dialect(driverName)
	if err != nil {
		return nil, err
	}
	if name == sqliteDriver {
		dsn = sqliteDSN(dsn)
	}
	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	if name == sqliteDriver && strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureSchema(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func dialect(driverName string) (string, []string, error) {
	switch strings.ToLower(driverName) {
	case "", config.DriverSQLite:
		return sqliteDriver, sqliteSchema, nil
	case config.DriverPostgres, postgresDriver:
		return postgresDriver, postgresSchema, nil
	}
	return "", nil, fmt.Errorf("unsupported db driver %q", driverName)
}

// statements returns a squirrel builder speaking the placeholder style of db.
func statements(db *sqlx.DB) sq.StatementBuilderType {
	if db.DriverName() == postgresDriver {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories(LOWER(name))`,
	`CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  description TEXT,
  category_id INTEGER,
  image_url TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories(
  id SERIAL PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  description TEXT
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories(LOWER(name))`,
	`CREATE TABLE IF NOT EXISTS products(
  id SERIAL PRIMARY KEY,
  title VARCHAR(255) NOT NULL,
  price NUMERIC(10,2) NOT NULL,
  description TEXT,
  category_id INTEGER,
  image_url TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
}

// products.category_id carries no FK constraint: a product may point at a
// category that does not exist and reads back with null category fields.
func ensureSchema(db *sqlx.DB, stmts []string) error {
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type seedCategory struct {
	Name, Description string
}

type seedProduct struct {
	Title, Price, Description, ImageURL string
	Category                            int
}

var demoCategories = []seedCategory{
	{"Men's Clothing", "Clothing and accessories for men"},
	{"Jewelry", "Jewelry and accessories"},
	{"Electronics", "Electronic devices and technology"},
	{"Women's Clothing", "Clothing and accessories for women"},
	{"Home", "Household items"},
	{"Sports", "Sporting goods and fitness"},
}

// Category is a 1-based position in demoCategories.
var demoProducts = []seedProduct{
	{"Slim Fit Cotton Shirt", "29.90", "Breathable cotton shirt for everyday wear", "", 1},
	{"Silver Chain Bracelet", "59.00", "Sterling silver bracelet", "", 2},
	{"Wireless Earbuds", "79.99", "Bluetooth earbuds with charging case", "", 3},
	{"Linen Summer Dress", "45.50", "Light dress, pairs well with a denim shirt", "", 4},
	{"Ceramic Table Lamp", "34.00", "Warm light lamp for the living room", "", 5},
	{"Running Shoes", "89.00", "Cushioned shoes for road running", "", 6},
}

// SeedIfEmpty inserts the demo catalog when there are no categories yet.
func SeedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return seed(ctx, db)
}

// CleanAndSeed wipes both tables, resets their id sequences and inserts the
// demo catalog.
func CleanAndSeed(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	if db.DriverName() == postgresDriver {
		stmts = []string{`TRUNCATE TABLE products, categories RESTART IDENTITY CASCADE`}
	} else {
		stmts = []string{
			`DELETE FROM products`,
			`DELETE FROM categories`,
			`DELETE FROM sqlite_sequence WHERE name IN ('products','categories')`,
		}
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return seed(ctx, db)
}

func seed(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	b := statements(db)
	ids := make([]int64, len(demoCategories))
	for i, c := range demoCategories {
		q, args, err := b.Insert("categories").
			Columns("name", "description").
			Values(c.Name, c.Description).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowxContext(ctx, q, args...).Scan(&ids[i]); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	for _, p := range demoProducts {
		q, args, err := b.Insert("products").
			Columns("title", "price", "description", "category_id", "image_url").
			Values(p.Title, p.Price, p.Description, ids[p.Category-1], nullable(p.ImageURL)).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Title, err)
		}
	}
	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}
