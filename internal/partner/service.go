package partner

import (
	"context"

	"foodbox-be/internal/geo"
	"foodbox-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListPartners(ctx context.Context, origin *geo.Coordinates) ([]Partner, error)
	GetPartner(ctx context.Context, id string) (*Partner, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListPartners returns all partners in fetch order. When an origin is given,
// each partner carries its great-circle distance from it.
func (s *service) ListPartners(ctx context.Context, origin *geo.Coordinates) ([]Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListPartners"),
	)
	log.Debug("start list partners")

	partners, err := s.repo.GetPartners(ctx)
	if err != nil {
		log.Error("failed to list partners", zap.Error(err))
		return nil, err
	}

	if origin != nil {
		for i := range partners {
			d := geo.Distance(*origin, partners[i].Coords)
			partners[i].Distance = &d
		}
	}

	log.Info("success list partners", zap.Int("count", len(partners)))
	return partners, nil
}

func (s *service) GetPartner(ctx context.Context, id string) (*Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetPartner"),
		zap.String("partner_id", id),
	)

	p, err := s.repo.GetPartner(ctx, id)
	if err != nil {
		log.Warn("failed to get partner", zap.Error(err))
		return nil, err
	}

	return p, nil
}
