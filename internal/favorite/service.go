package favorite

import (
	"context"

	"go.uber.org/zap"

	"foodbox-be/internal/logger"
	"foodbox-be/internal/partner"
)

type Service interface {
	// Toggle flips the mark and returns the new state.
	Toggle(ctx context.Context, customerID, businessID string) (bool, error)
	// ListPartners returns the customer's favorited partners.
	ListPartners(ctx context.Context, customerID string) ([]*partner.Partner, error)
}

type service struct {
	repo     Repository
	partners partner.Repository
}

func NewService(repo Repository, partners partner.Repository) Service {
	return &service{repo: repo, partners: partners}
}

func (s *service) Toggle(ctx context.Context, customerID, businessID string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "favoriteService"),
		zap.String("method", "Toggle"),
		zap.String("business_id", businessID),
	)
	log.Debug("start toggling favorite")

	// reject unknown businesses up front so favorites cannot dangle
	if _, err := s.partners.GetPartner(ctx, businessID); err != nil {
		return false, err
	}

	favorited, err := s.repo.Toggle(ctx, customerID, businessID)
	if err != nil {
		return false, err
	}

	log.Info("success toggling favorite", zap.Bool("favorited", favorited))
	return favorited, nil
}

func (s *service) ListPartners(ctx context.Context, customerID string) ([]*partner.Partner, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "favoriteService"),
		zap.String("method", "ListPartners"),
	)
	log.Debug("start listing favorites")

	ids, err := s.repo.ListBusinessIDs(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := []*partner.Partner{}
	for _, id := range ids {
		p, err := s.partners.GetPartner(ctx, id)
		if err != nil {
			// a partner removed after being favorited is skipped, not fatal
			log.Warn("favorited partner missing", zap.String("business_id", id), zap.Error(err))
			continue
		}
		result = append(result, p)
	}

	log.Info("success listing favorites", zap.Int("count", len(result)))
	return result, nil
}
