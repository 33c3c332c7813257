package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/Lixing-Zhang/product-service/internal/models"
)

const productsTable = "Products"

// SQL Server takes positional parameters as @p1, @p2, ...
var statements = sq.StatementBuilder.PlaceholderFormat(sq.AtP)

// SQLServerProductRepository implements ProductRepository against the Products table.
// Driver errors are returned as-is; their text is what API clients see.
type SQLServerProductRepository struct {
	db *sql.DB
}

// NewSQLServerProductRepository creates a repository using the given connection handle
func NewSQLServerProductRepository(db *sql.DB) *SQLServerProductRepository {
	return &SQLServerProductRepository{db: db}
}

// GetAll returns every row in database order
func (r *SQLServerProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := statements.
		Select("Id", "Name", "Price").
		From(productsTable).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		// NULL Name or Price scans to nil
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Create inserts a row. Absent fields are bound as NULL.
func (r *SQLServerProductRepository) Create(ctx context.Context, req models.CreateProductRequest) error {
	_, err := statements.
		Insert(productsTable).
		Columns("Name", "Price").
		Values(req.Name, req.Price).
		RunWith(r.db).
		ExecContext(ctx)
	return err
}

// Delete removes the row with the given Id. Deleting a missing Id is not an error.
func (r *SQLServerProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := statements.
		Delete(productsTable).
		Where(sq.Eq{"Id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	return err
}

// Ping reports whether the database is reachable
func (r *SQLServerProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
