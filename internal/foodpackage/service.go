package foodpackage

import (
	"context"

	"foodbox-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListBusinessPackages(ctx context.Context, businessID string, includeUnavailable bool) ([]FoodPackage, error)
	GetPackage(ctx context.Context, id string) (*FoodPackage, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListBusinessPackages(ctx context.Context, businessID string, includeUnavailable bool) ([]FoodPackage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListBusinessPackages"),
		zap.String("business_id", businessID),
	)
	log.Debug("start list business packages")

	pkgs, err := s.repo.ListByBusiness(ctx, businessID, includeUnavailable)
	if err != nil {
		log.Error("failed to list business packages", zap.Error(err))
		return nil, err
	}

	log.Info("success list business packages", zap.Int("count", len(pkgs)))
	return pkgs, nil
}

func (s *service) GetPackage(ctx context.Context, id string) (*FoodPackage, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetPackage"),
		zap.String("package_id", id),
	)

	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Warn("failed to get package", zap.Error(err))
		return nil, err
	}

	return pkg, nil
}
