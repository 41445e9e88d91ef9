package foodpackage

import (
	"encoding/json"
	"fmt"
	"time"
)

// DTO is the raw food package row. Timestamps arrive as RFC3339 strings and
// may be absent.
type DTO struct {
	ID                string  `json:"id"`
	BusinessID        string  `json:"business_id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	OriginalPrice     float64 `json:"original_price"`
	DiscountedPrice   float64 `json:"discounted_price"`
	Quantity          int     `json:"quantity"`
	AvailableQuantity int     `json:"available_quantity"`
	MaxQuantity       int     `json:"max_quantity"`
	ImageURL          *string `json:"image_url"`
	FoodType          *string `json:"food_type"`
	PickupStartTime   *string `json:"pickup_start_time"`
	PickupEndTime     *string `json:"pickup_end_time"`
	Status            *string `json:"status"`
	AvailabilityStart *string `json:"availability_start"`
	AvailabilityEnd   *string `json:"availability_end"`
	SoldOut           *bool   `json:"sold_out"`
	Revision          int64   `json:"revision"`
	CreatedAt         *string `json:"created_at"`
	UpdatedAt         *string `json:"updated_at"`
}

// FromDTO converts a backend row into a FoodPackage. Absent or unparseable
// timestamps map to nil; sold_out defaults to false.
func FromDTO(dto DTO) FoodPackage {
	pkg := FoodPackage{
		ID:                dto.ID,
		BusinessID:        dto.BusinessID,
		Name:              dto.Name,
		Description:       dto.Description,
		OriginalPrice:     dto.OriginalPrice,
		DiscountedPrice:   dto.DiscountedPrice,
		Quantity:          dto.Quantity,
		AvailableQuantity: dto.AvailableQuantity,
		MaxQuantity:       dto.MaxQuantity,
		ImageURL:          dto.ImageURL,
		FoodType:          dto.FoodType,
		PickupStartTime:   parseTime(dto.PickupStartTime),
		PickupEndTime:     parseTime(dto.PickupEndTime),
		AvailabilityStart: parseTime(dto.AvailabilityStart),
		AvailabilityEnd:   parseTime(dto.AvailabilityEnd),
		Revision:          dto.Revision,
		CreatedAt:         parseTime(dto.CreatedAt),
		UpdatedAt:         parseTime(dto.UpdatedAt),
	}

	if dto.Status != nil {
		pkg.Status = Status(*dto.Status)
	}
	if dto.SoldOut != nil {
		pkg.SoldOut = *dto.SoldOut
	}

	return pkg
}

// EventFromJSON decodes a pushed change event. The payload carries the raw
// row shape, so the same transformer guards this boundary too.
func EventFromJSON(data []byte) (Event, error) {
	var wire struct {
		Type   EventType `json:"type"`
		Record DTO       `json:"record"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Event{}, fmt.Errorf("failed to decode package event: %w", err)
	}

	switch wire.Type {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return Event{}, fmt.Errorf("unknown package event type %q", wire.Type)
	}

	return Event{Type: wire.Type, Package: FromDTO(wire.Record)}, nil
}

func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
