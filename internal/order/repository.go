package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/logger"
)

type Repository interface {
	// CreateOrderTx inserts the order and takes its quantity from the
	// package in one transaction. Returns the package as it looks after
	// the reservation so callers can broadcast the change.
	CreateOrderTx(ctx context.Context, o *Order) (*foodpackage.FoodPackage, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	Get(ctx context.Context, id, customerID string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) (*foodpackage.FoodPackage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderRepository"),
		zap.String("method", "CreateOrderTx"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Take quantity from the package. The guard on available_quantity
	// makes overselling impossible under concurrent checkouts; the
	// revision bump lets feed consumers order this change correctly.
	row := tx.QueryRowContext(ctx, `
		UPDATE food_packages
		SET available_quantity = available_quantity - $1,
		    sold_out = (available_quantity - $1 <= 0),
		    revision = revision + 1,
		    updated_at = NOW()
		WHERE id = $2 AND available_quantity >= $1
		RETURNING
			id, business_id, name, description,
			original_price, discounted_price,
			quantity, available_quantity, max_quantity,
			image_url, food_type,
			pickup_start_time, pickup_end_time,
			status, availability_start, availability_end,
			sold_out, revision, created_at, updated_at
	`, o.Quantity, o.PackageID)

	pkg, err := scanOrderedPackage(row)
	if err == sql.ErrNoRows {
		return nil, ErrQuantityUnavailable
	}
	if err != nil {
		log.Error("failed to reserve quantity", zap.Error(err))
		return nil, err
	}

	// 2. Insert the order
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, business_id, package_id,
			quantity, total_price, status,
			pickup_start, pickup_end, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID,
		o.CustomerID,
		o.BusinessID,
		o.PackageID,
		o.Quantity,
		o.Total,
		o.Status,
		o.PickupStart,
		o.PickupEnd,
		o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created", zap.String("orderID", o.ID), zap.Int64("packageRevision", pkg.Revision))
	return pkg, nil
}

const orderColumns = `
	o.id, o.customer_id, o.business_id, o.package_id,
	fp.name, p.name,
	o.quantity, o.total_price, o.status,
	o.pickup_start, o.pickup_end, o.created_at
`

func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderRepository"),
		zap.String("method", "ListByCustomer"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN food_packages fp ON fp.id = o.package_id
		JOIN partners p ON p.id = o.business_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC
	`, customerID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("success listing orders", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) Get(ctx context.Context, id, customerID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN food_packages fp ON fp.id = o.package_id
		JOIN partners p ON p.id = o.business_id
		WHERE o.id = $1 AND o.customer_id = $2
	`, id, customerID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		pickupStart sql.NullTime
		pickupEnd   sql.NullTime
	)
	if err := row.Scan(
		&o.ID, &o.CustomerID, &o.BusinessID, &o.PackageID,
		&o.PackageName, &o.BusinessName,
		&o.Quantity, &o.Total, &o.Status,
		&pickupStart, &pickupEnd, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if pickupStart.Valid {
		t := pickupStart.Time
		o.PickupStart = &t
	}
	if pickupEnd.Valid {
		t := pickupEnd.Time
		o.PickupEnd = &t
	}
	return &o, nil
}

func scanOrderedPackage(row rowScanner) (*foodpackage.FoodPackage, error) {
	var (
		pkg         foodpackage.FoodPackage
		description sql.NullString
		imageURL    sql.NullString
		foodType    sql.NullString
		status      sql.NullString
		pickupStart sql.NullTime
		pickupEnd   sql.NullTime
		availStart  sql.NullTime
		availEnd    sql.NullTime
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	if err := row.Scan(
		&pkg.ID, &pkg.BusinessID, &pkg.Name, &description,
		&pkg.OriginalPrice, &pkg.DiscountedPrice,
		&pkg.Quantity, &pkg.AvailableQuantity, &pkg.MaxQuantity,
		&imageURL, &foodType,
		&pickupStart, &pickupEnd,
		&status, &availStart, &availEnd,
		&pkg.SoldOut, &pkg.Revision, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		s := description.String
		pkg.Description = &s
	}
	if imageURL.Valid {
		s := imageURL.String
		pkg.ImageURL = &s
	}
	if foodType.Valid {
		s := foodType.String
		pkg.FoodType = &s
	}
	if status.Valid {
		pkg.Status = foodpackage.Status(status.String)
	}
	pkg.PickupStartTime = timePtr(pickupStart)
	pkg.PickupEndTime = timePtr(pickupEnd)
	pkg.AvailabilityStart = timePtr(availStart)
	pkg.AvailabilityEnd = timePtr(availEnd)
	pkg.CreatedAt = timePtr(createdAt)
	pkg.UpdatedAt = timePtr(updatedAt)

	return &pkg, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
