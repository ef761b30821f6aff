package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/store"
)

func (d *DB) CreateOrder(ctx context.Context, create *store.Order) (*store.Order, error) {
	items, err := json.Marshal(create.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal order items")
	}

	stmt := `
		INSERT INTO orders (
			customer_email, customer_name, customer_phone,
			shipping_address, shipping_city, shipping_province, shipping_postal_code,
			shipping_method, shipping_price, subtotal, total, status, created_ts, items
		)
		VALUES (` + placeholders(14) + `)
		RETURNING id
	`

	postalCode := sql.NullString{String: create.ShippingPostalCode, Valid: create.ShippingPostalCode != ""}
	err = d.db.QueryRowContext(ctx, stmt,
		create.CustomerEmail,
		create.CustomerName,
		create.CustomerPhone,
		create.ShippingAddress,
		create.ShippingCity,
		create.ShippingProvince,
		postalCode,
		create.ShippingMethod,
		create.ShippingPrice,
		create.Subtotal,
		create.Total,
		create.Status,
		create.CreatedTs,
		items,
	).Scan(&create.ID)

	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	return create, nil
}

func (d *DB) ListOrders(ctx context.Context, find *store.FindOrder) ([]*store.Order, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find != nil {
		if find.ID != nil {
			where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
		}
		if find.CustomerEmail != nil {
			where, args = append(where, "customer_email = "+placeholder(len(args)+1)), append(args, *find.CustomerEmail)
		}
	}

	query := `
		SELECT
			id, customer_email, customer_name, customer_phone,
			shipping_address, shipping_city, shipping_province, shipping_postal_code,
			shipping_method, shipping_price, subtotal, total, status, created_ts, items
		FROM orders
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}
	defer rows.Close()

	list := []*store.Order{}
	for rows.Next() {
		var order store.Order
		var postalCode sql.NullString
		var items []byte
		err := rows.Scan(
			&order.ID,
			&order.CustomerEmail,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.ShippingAddress,
			&order.ShippingCity,
			&order.ShippingProvince,
			&postalCode,
			&order.ShippingMethod,
			&order.ShippingPrice,
			&order.Subtotal,
			&order.Total,
			&order.Status,
			&order.CreatedTs,
			&items,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan order")
		}

		order.ShippingPostalCode = postalCode.String
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal items of order %d", order.ID)
		}

		list = append(list, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) GetShippingCost(ctx context.Context, postalCode string) (*store.ShippingCost, error) {
	query := `SELECT postal_code, price FROM shipping_costs WHERE postal_code = ` + placeholder(1)

	var cost store.ShippingCost
	err := d.db.QueryRowContext(ctx, query, postalCode).Scan(&cost.PostalCode, &cost.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get shipping cost")
	}

	return &cost, nil
}
