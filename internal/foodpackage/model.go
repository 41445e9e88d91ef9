package foodpackage

import (
	"math"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// FoodPackage is one discounted surplus-food offer belonging to a business.
type FoodPackage struct {
	ID                string     `json:"id"`
	BusinessID        string     `json:"business_id"`
	Name              string     `json:"name"`
	Description       *string    `json:"description"`
	OriginalPrice     float64    `json:"original_price"`
	DiscountedPrice   float64    `json:"discounted_price"`
	Quantity          int        `json:"quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	MaxQuantity       int        `json:"max_quantity"`
	ImageURL          *string    `json:"image_url"`
	FoodType          *string    `json:"food_type"`
	PickupStartTime   *time.Time `json:"pickup_start_time"`
	PickupEndTime     *time.Time `json:"pickup_end_time"`
	Status            Status     `json:"status"`
	AvailabilityStart *time.Time `json:"availability_start"`
	AvailabilityEnd   *time.Time `json:"availability_end"`
	SoldOut           bool       `json:"sold_out"`
	Revision          int64      `json:"revision"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// AvailableAt reports whether the package can be shown to customers at the
// given moment: stock left, not sold out, inside the availability window.
func (p FoodPackage) AvailableAt(now time.Time) bool {
	if p.AvailableQuantity <= 0 || p.SoldOut {
		return false
	}
	if p.AvailabilityStart == nil || p.AvailabilityEnd == nil {
		return false
	}
	return !now.Before(*p.AvailabilityStart) && !now.After(*p.AvailabilityEnd)
}

// DiscountPercent returns the rounded percentage saved against the original
// price. Zero when the original price is not positive.
func DiscountPercent(original, discounted float64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((original - discounted) / original * 100))
}
