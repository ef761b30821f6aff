package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/store"
)

func (d *DB) ListProducts(ctx context.Context, find *store.FindProduct) ([]*store.Product, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find != nil {
		if find.ID != nil {
			where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
		}
		if find.Category != nil {
			where, args = append(where, "category = "+placeholder(len(args)+1)), append(args, *find.Category)
		}
	}

	query := `
		SELECT id, name, description, price, image, category, stock
		FROM products
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (d *DB) SearchProducts(ctx context.Context, search string, limit int) ([]*store.Product, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, name, description, price, image, category, stock
		FROM products
		WHERE name ILIKE ` + placeholder(1) + ` OR description ILIKE ` + placeholder(2) + `
		ORDER BY id
		LIMIT ` + placeholder(3)

	pattern := "%" + search + "%"
	rows, err := d.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*store.Product, error) {
	list := []*store.Product{}
	for rows.Next() {
		var product store.Product
		var description, image sql.NullString
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&description,
			&product.Price,
			&image,
			&product.Category,
			&product.Stock,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan product")
		}

		product.Description = description.String
		product.Image = image.String
		list = append(list, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
