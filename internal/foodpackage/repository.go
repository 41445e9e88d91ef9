package foodpackage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodbox-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByBusiness(ctx context.Context, businessID string, includeUnavailable bool) ([]FoodPackage, error)
	Get(ctx context.Context, id string) (*FoodPackage, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const packageColumns = `
	id, business_id, name, description,
	original_price, discounted_price,
	quantity, available_quantity, max_quantity,
	image_url, food_type,
	pickup_start_time, pickup_end_time,
	status, availability_start, availability_end,
	sold_out, revision, created_at, updated_at
`

func (r *repository) ListByBusiness(ctx context.Context, businessID string, includeUnavailable bool) ([]FoodPackage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByBusiness"),
		zap.String("business_id", businessID),
		zap.Bool("include_unavailable", includeUnavailable),
	)
	log.Debug("start list packages")

	query := `SELECT` + packageColumns + `FROM food_packages WHERE business_id = $1`
	if !includeUnavailable {
		query += ` AND available_quantity > 0 AND NOT sold_out
			AND availability_start IS NOT NULL AND availability_end IS NOT NULL
			AND NOW() BETWEEN availability_start AND availability_end`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		log.Error("failed to query packages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []FoodPackage{}
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			log.Error("failed to scan package row", zap.Error(err))
			return nil, err
		}
		result = append(result, pkg)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Info("success list packages", zap.Int("count", len(result)))
	return result, nil
}

func (r *repository) Get(ctx context.Context, id string) (*FoodPackage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Get"),
		zap.String("package_id", id),
	)

	row := r.db.QueryRowContext(ctx, `SELECT`+packageColumns+`FROM food_packages WHERE id = $1`, id)
	pkg, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		log.Error("failed to scan package", zap.Error(err))
		return nil, err
	}

	return &pkg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (FoodPackage, error) {
	var (
		pkg         FoodPackage
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
		return FoodPackage{}, err
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
		pkg.Status = Status(status.String)
	}
	pkg.PickupStartTime = nullableTime(pickupStart)
	pkg.PickupEndTime = nullableTime(pickupEnd)
	pkg.AvailabilityStart = nullableTime(availStart)
	pkg.AvailabilityEnd = nullableTime(availEnd)
	pkg.CreatedAt = nullableTime(createdAt)
	pkg.UpdatedAt = nullableTime(updatedAt)

	return pkg, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
