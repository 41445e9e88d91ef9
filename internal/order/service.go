package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/logger"
)

type CheckoutInput struct {
	PackageID string `json:"packageId"`
	Quantity  int    `json:"quantity"`
}

type Service interface {
	// Checkout reserves quantity of a package for the customer and
	// returns the created order.
	Checkout(ctx context.Context, customerID string, input CheckoutInput) (*Order, error)
	// History returns the customer's orders split into upcoming pickups
	// and settled orders.
	History(ctx context.Context, customerID string) (*History, error)
	GetOrder(ctx context.Context, id, customerID string) (*Order, error)
}

type service struct {
	repo     Repository
	packages foodpackage.Repository
	feed     foodpackage.Publisher
	now      func() time.Time
}

func NewService(repo Repository, packages foodpackage.Repository, feed foodpackage.Publisher) Service {
	return &service{repo: repo, packages: packages, feed: feed, now: time.Now}
}

func (s *service) Checkout(ctx context.Context, customerID string, input CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "Checkout"),
		zap.String("package_id", input.PackageID),
	)
	log.Debug("start checkout")

	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	pkg, err := s.packages.Get(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if pkg.SoldOut || pkg.AvailableQuantity <= 0 {
		return nil, ErrPackageSoldOut
	}
	if !pkg.AvailableAt(now) {
		return nil, ErrPackageUnavailable
	}
	if pkg.MaxQuantity > 0 && input.Quantity > pkg.MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	if input.Quantity > pkg.AvailableQuantity {
		return nil, ErrQuantityUnavailable
	}

	o := &Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		BusinessID:  pkg.BusinessID,
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Quantity:    input.Quantity,
		Total:       float64(input.Quantity) * pkg.DiscountedPrice,
		Status:      StatusPending,
		PickupStart: pkg.PickupStartTime,
		PickupEnd:   pkg.PickupEndTime,
		CreatedAt:   now,
	}

	updated, err := s.repo.CreateOrderTx(ctx, o)
	if err != nil {
		log.Error("checkout failed", zap.Error(err))
		return nil, err
	}

	// let every open storefront see the stock drop
	if s.feed != nil {
		s.feed.Publish(updated.BusinessID, foodpackage.Event{
			Type:    foodpackage.EventUpdate,
			Package: *updated,
		})
	}

	log.Info("success checkout",
		zap.String("orderID", o.ID),
		zap.Float64("total", o.Total),
	)
	return o, nil
}

func (s *service) History(ctx context.Context, customerID string) (*History, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "History"),
	)
	log.Debug("start listing history")

	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	h := &History{Upcoming: []*Order{}, Past: []*Order{}}
	for _, o := range orders {
		if o.Upcoming() {
			h.Upcoming = append(h.Upcoming, o)
		} else {
			h.Past = append(h.Past, o)
		}
	}

	log.Info("success listing history",
		zap.Int("upcoming", len(h.Upcoming)),
		zap.Int("past", len(h.Past)),
	)
	return h, nil
}

func (s *service) GetOrder(ctx context.Context, id, customerID string) (*Order, error) {
	return s.repo.Get(ctx, id, customerID)
}
