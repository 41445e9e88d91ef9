package partner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodbox-be/internal/geo"
	"foodbox-be/internal/logger"

	"go.uber.org/zap"
)

// Default working window applied when a partner has no schedule entry for
// today or the stored schedule cannot be parsed.
const (
	defaultOpenHour  = 9
	defaultCloseHour = 22
)

// DTO is the raw partner row as stored by the backend. OperatingHours holds
// the weekly schedule as a JSON-encoded array of {open, close, day}.
type DTO struct {
	ID             string
	Name           string
	Address        string
	LogoURL        *string
	BackgroundURL  *string
	Rating         float64
	Latitude       float64
	Longitude      float64
	OperatingHours []byte
	MinPrice       *float64
	BoxCount       int
}

// FromDTO converts a backend row into a Partner, resolving the weekly
// schedule against the current day.
func FromDTO(dto DTO) Partner {
	return FromDTOAt(dto, time.Now())
}

// FromDTOAt is FromDTO with an explicit "today". It is total: malformed
// schedules fall back to the default window instead of failing.
func FromDTOAt(dto DTO, now time.Time) Partner {
	workStartAt, workEndAt := resolveWorkWindow(dto, now)

	price := 0.0
	if dto.MinPrice != nil {
		price = *dto.MinPrice
	}

	return Partner{
		ID:            dto.ID,
		Name:          dto.Name,
		Address:       dto.Address,
		LogoURL:       dto.LogoURL,
		BackgroundURL: dto.BackgroundURL,
		Rating:        dto.Rating,
		WorkStartAt:   workStartAt,
		WorkEndAt:     workEndAt,
		Coords: geo.Coordinates{
			Latitude:  dto.Latitude,
			Longitude: dto.Longitude,
		},
		Price:         price,
		TotalBoxCount: dto.BoxCount,
	}
}

func resolveWorkWindow(dto DTO, now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), defaultOpenHour, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), defaultCloseHour, 0, 0, 0, now.Location())

	if len(dto.OperatingHours) == 0 {
		return start, end
	}

	var schedule []OperatingHour
	if err := json.Unmarshal(dto.OperatingHours, &schedule); err != nil {
		logger.L().Warn("failed to parse operating hours, using defaults",
			zap.String("partner_id", dto.ID),
			zap.Error(err),
		)
		return start, end
	}

	// Weekday numbering matches the stored 0-6 convention (Sunday = 0).
	today := int(now.Weekday())

	for _, entry := range schedule {
		if entry.Day != today {
			continue
		}

		openH, openM, errOpen := parseClock(entry.Open)
		closeH, closeM, errClose := parseClock(entry.Close)
		if errOpen != nil || errClose != nil {
			logger.L().Warn("invalid clock value in operating hours, using defaults",
				zap.String("partner_id", dto.ID),
				zap.String("open", entry.Open),
				zap.String("close", entry.Close),
			)
			return start, end
		}

		start = time.Date(now.Year(), now.Month(), now.Day(), openH, openM, 0, 0, now.Location())
		end = time.Date(now.Year(), now.Month(), now.Day(), closeH, closeM, 0, 0, now.Location())
		return start, end
	}

	return start, end
}

// parseClock splits an "HH:MM" string into its numeric parts.
func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing colon in clock value %q", s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("clock value out of range: %q", s)
	}

	return hours, minutes, nil
}
