package partner

import (
	"context"
	"database/sql"
	"errors"

	"foodbox-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetPartners(ctx context.Context) ([]Partner, error)
	GetPartner(ctx context.Context, id string) (*Partner, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const partnerColumns = `
	p.id,
	p.name,
	p.address,
	p.logo_url,
	p.background_url,
	p.rating,
	p.latitude,
	p.longitude,
	p.operating_hours,
	MIN(fp.discounted_price) AS min_price,
	COALESCE(SUM(fp.quantity), 0) AS box_count
`

const partnerGroupBy = `
	GROUP BY p.id, p.name, p.address, p.logo_url, p.background_url,
		p.rating, p.latitude, p.longitude, p.operating_hours, p.created_at
`

func (r *repository) GetPartners(ctx context.Context) ([]Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetPartners"),
	)
	log.Debug("start get partners")

	query := `
		SELECT ` + partnerColumns + `
		FROM partners p
		LEFT JOIN food_packages fp ON fp.business_id = p.id AND NOT fp.sold_out
	` + partnerGroupBy + `
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query partners", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			log.Error("failed to scan partner row", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Info("success get partners", zap.Int("count", len(result)))
	return result, nil
}

func (r *repository) GetPartner(ctx context.Context, id string) (*Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetPartner"),
		zap.String("partner_id", id),
	)

	query := `
		SELECT ` + partnerColumns + `
		FROM partners p
		LEFT JOIN food_packages fp ON fp.business_id = p.id AND NOT fp.sold_out
		WHERE p.id = $1
	` + partnerGroupBy

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPartner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		log.Error("failed to scan partner", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row rowScanner) (Partner, error) {
	var (
		dto        DTO
		logoURL    sql.NullString
		bgURL      sql.NullString
		hours      []byte
		minPrice   sql.NullFloat64
		boxCount   sql.NullInt64
	)

	if err := row.Scan(
		&dto.ID,
		&dto.Name,
		&dto.Address,
		&logoURL,
		&bgURL,
		&dto.Rating,
		&dto.Latitude,
		&dto.Longitude,
		&hours,
		&minPrice,
		&boxCount,
	); err != nil {
		return Partner{}, err
	}

	if logoURL.Valid {
		s := logoURL.String
		dto.LogoURL = &s
	}
	if bgURL.Valid {
		s := bgURL.String
		dto.BackgroundURL = &s
	}
	if minPrice.Valid {
		v := minPrice.Float64
		dto.MinPrice = &v
	}
	if boxCount.Valid {
		dto.BoxCount = int(boxCount.Int64)
	}
	dto.OperatingHours = hours

	return FromDTO(dto), nil
}
