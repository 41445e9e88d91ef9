package partner

import (
	"time"

	"foodbox-be/internal/geo"
)

// OperatingHour is one weekday entry of a partner's weekly schedule.
// Day follows the 0-6 convention with Sunday as 0.
type OperatingHour struct {
	Open  string `json:"open"`
	Close string `json:"close"`
	Day   int    `json:"day"`
}

// Partner is a business offering discounted food boxes.
type Partner struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	LogoURL       *string         `json:"logoUrl,omitempty"`
	BackgroundURL *string         `json:"backgroundUrl,omitempty"`
	Rating        float64         `json:"rating"`
	WorkStartAt   time.Time       `json:"workStartAt"`
	WorkEndAt     time.Time       `json:"workEndAt"`
	Coords        geo.Coordinates `json:"coords"`
	Distance      *float64        `json:"distance,omitempty"`
	Price         float64         `json:"price"`
	TotalBoxCount int             `json:"totalBoxCount"`
}
