package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodbox-be/internal/foodpackage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order) (*foodpackage.FoodPackage, error) {
	args := m.Called(ctx, o)
	if pkg := args.Get(0); pkg != nil {
		return pkg.(*foodpackage.FoodPackage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	args := m.Called(ctx, customerID)
	if orders := args.Get(0); orders != nil {
		return orders.([]*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id, customerID string) (*Order, error) {
	args := m.Called(ctx, id, customerID)
	if o := args.Get(0); o != nil {
		return o.(*Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) ListByBusiness(ctx context.Context, businessID string, includeUnavailable bool) ([]foodpackage.FoodPackage, error) {
	args := m.Called(ctx, businessID, includeUnavailable)
	if pkgs := args.Get(0); pkgs != nil {
		return pkgs.([]foodpackage.FoodPackage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPackageRepository) Get(ctx context.Context, id string) (*foodpackage.FoodPackage, error) {
	args := m.Called(ctx, id)
	if pkg := args.Get(0); pkg != nil {
		return pkg.(*foodpackage.FoodPackage), args.Error(1)
	}
	return nil, args.Error(1)
}

type capturingPublisher struct {
	businessID string
	events     []foodpackage.Event
}

func (p *capturingPublisher) Publish(businessID string, ev foodpackage.Event) {
	p.businessID = businessID
	p.events = append(p.events, ev)
}

func availablePackage() *foodpackage.FoodPackage {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	return &foodpackage.FoodPackage{
		ID:                "pkg-1",
		BusinessID:        "biz-1",
		Name:              "Mystery Box",
		OriginalPrice:     3000,
		DiscountedPrice:   1500,
		Quantity:          10,
		AvailableQuantity: 5,
		MaxQuantity:       3,
		Status:            foodpackage.StatusActive,
		AvailabilityStart: &start,
		AvailabilityEnd:   &end,
		Revision:          7,
	}
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	packages := new(MockPackageRepository)
	feed := &capturingPublisher{}
	svc := NewService(repo, packages, feed)

	pkg := availablePackage()
	packages.On("Get", ctx, "pkg-1").Return(pkg, nil)

	updated := *pkg
	updated.AvailableQuantity = 3
	updated.Revision = 8
	repo.On("CreateOrderTx", ctx, mock.AnythingOfType("*order.Order")).Return(&updated, nil)

	o, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "u-1", o.CustomerID)
	assert.Equal(t, "biz-1", o.BusinessID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, float64(3000), o.Total, "total = quantity x discounted price")

	// the stock drop is broadcast with the bumped revision
	require.Len(t, feed.events, 1)
	assert.Equal(t, "biz-1", feed.businessID)
	assert.Equal(t, foodpackage.EventUpdate, feed.events[0].Type)
	assert.Equal(t, int64(8), feed.events[0].Package.Revision)
	assert.Equal(t, 3, feed.events[0].Package.AvailableQuantity)

	repo.AssertExpectations(t)
	packages.AssertExpectations(t)
}

func TestService_Checkout_Validation(t *testing.T) {
	ctx := context.Background()

	newSvc := func(pkg *foodpackage.FoodPackage) Service {
		repo := new(MockRepository)
		packages := new(MockPackageRepository)
		packages.On("Get", ctx, "pkg-1").Return(pkg, nil)
		return NewService(repo, packages, &capturingPublisher{})
	}

	t.Run("zero quantity", func(t *testing.T) {
		svc := newSvc(availablePackage())
		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("sold out", func(t *testing.T) {
		pkg := availablePackage()
		pkg.SoldOut = true
		svc := newSvc(pkg)
		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 1})
		assert.ErrorIs(t, err, ErrPackageSoldOut)
	})

	t.Run("outside availability window", func(t *testing.T) {
		pkg := availablePackage()
		past := time.Now().Add(-2 * time.Hour)
		pkg.AvailabilityEnd = &past
		svc := newSvc(pkg)
		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 1})
		assert.ErrorIs(t, err, ErrPackageUnavailable)
	})

	t.Run("above per-order max", func(t *testing.T) {
		svc := newSvc(availablePackage())
		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 4})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("above available stock", func(t *testing.T) {
		pkg := availablePackage()
		pkg.MaxQuantity = 10
		pkg.AvailableQuantity = 2
		svc := newSvc(pkg)
		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 3})
		assert.ErrorIs(t, err, ErrQuantityUnavailable)
	})

	t.Run("unknown package", func(t *testing.T) {
		repo := new(MockRepository)
		packages := new(MockPackageRepository)
		packages.On("Get", ctx, "pkg-x").Return(nil, foodpackage.ErrPackageNotFound)
		svc := NewService(repo, packages, &capturingPublisher{})

		_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-x", Quantity: 1})
		assert.ErrorIs(t, err, foodpackage.ErrPackageNotFound)
	})
}

func TestService_Checkout_RaceLostAtCommit(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	packages := new(MockPackageRepository)
	packages.On("Get", ctx, "pkg-1").Return(availablePackage(), nil)
	repo.On("CreateOrderTx", ctx, mock.Anything).Return(nil, ErrQuantityUnavailable)

	feed := &capturingPublisher{}
	svc := NewService(repo, packages, feed)

	_, err := svc.Checkout(ctx, "u-1", CheckoutInput{PackageID: "pkg-1", Quantity: 2})
	assert.ErrorIs(t, err, ErrQuantityUnavailable)
	assert.Empty(t, feed.events, "nothing is broadcast for a failed checkout")
}

func TestService_History(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	orders := []*Order{
		{ID: "o-1", Status: StatusPending},
		{ID: "o-2", Status: StatusCompleted},
		{ID: "o-3", Status: StatusConfirmed},
		{ID: "o-4", Status: StatusCancelled},
	}
	repo.On("ListByCustomer", ctx, "u-1").Return(orders, nil)

	svc := NewService(repo, new(MockPackageRepository), &capturingPublisher{})

	h, err := svc.History(ctx, "u-1")
	require.NoError(t, err)

	require.Len(t, h.Upcoming, 2)
	assert.Equal(t, "o-1", h.Upcoming[0].ID)
	assert.Equal(t, "o-3", h.Upcoming[1].ID)

	require.Len(t, h.Past, 2)
	assert.Equal(t, "o-2", h.Past[0].ID)
	assert.Equal(t, "o-4", h.Past[1].ID)
}

func TestService_History_Empty(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("ListByCustomer", ctx, "u-1").Return([]*Order{}, nil)

	svc := NewService(repo, new(MockPackageRepository), &capturingPublisher{})

	h, err := svc.History(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, h.Upcoming)
	assert.Empty(t, h.Past)
}
