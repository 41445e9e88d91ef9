package partner

import (
	"testing"
	"time"

	"foodbox-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, so Weekday() == 3.
var wednesday = time.Date(2025, 6, 11, 15, 30, 0, 0, time.Local)

func validDTO() DTO {
	price := 1490.0
	return DTO{
		ID:             "p-1",
		Name:           "Papa Johns",
		Address:        "Jeltoksan 173",
		LogoURL:        utils.StrPtr("https://cdn.example.com/logo.png"),
		Rating:         4.7,
		Latitude:       51.127021,
		Longitude:      71.427302,
		OperatingHours: []byte(`[{"open":"10:30","close":"21:15","day":3},{"open":"11:00","close":"20:00","day":4}]`),
		MinPrice:       &price,
		BoxCount:       5,
	}
}

func TestFromDTOAt(t *testing.T) {
	t.Run("Resolves today's schedule entry", func(t *testing.T) {
		p := FromDTOAt(validDTO(), wednesday)

		assert.Equal(t, "p-1", p.ID)
		assert.Equal(t, "Papa Johns", p.Name)
		assert.Equal(t, 4.7, p.Rating)
		assert.Equal(t, 1490.0, p.Price)
		assert.Equal(t, 5, p.TotalBoxCount)
		assert.Equal(t, 51.127021, p.Coords.Latitude)

		assert.Equal(t, 10, p.WorkStartAt.Hour())
		assert.Equal(t, 30, p.WorkStartAt.Minute())
		assert.Equal(t, 21, p.WorkEndAt.Hour())
		assert.Equal(t, 15, p.WorkEndAt.Minute())
		assert.Equal(t, wednesday.Day(), p.WorkStartAt.Day())
	})

	t.Run("Idempotent for the same input", func(t *testing.T) {
		dto := validDTO()
		first := FromDTOAt(dto, wednesday)
		second := FromDTOAt(dto, wednesday)
		assert.Equal(t, first, second)
	})

	t.Run("No schedule falls back to 09:00-22:00", func(t *testing.T) {
		dto := validDTO()
		dto.OperatingHours = nil

		p := FromDTOAt(dto, wednesday)

		assert.Equal(t, 9, p.WorkStartAt.Hour())
		assert.Equal(t, 0, p.WorkStartAt.Minute())
		assert.Equal(t, 22, p.WorkEndAt.Hour())
		assert.Equal(t, 0, p.WorkEndAt.Minute())
		assert.Equal(t, wednesday.Day(), p.WorkEndAt.Day())
	})

	t.Run("Malformed schedule JSON falls back to defaults", func(t *testing.T) {
		dto := validDTO()
		dto.OperatingHours = []byte(`{not json`)

		p := FromDTOAt(dto, wednesday)

		assert.Equal(t, 9, p.WorkStartAt.Hour())
		assert.Equal(t, 22, p.WorkEndAt.Hour())
	})

	t.Run("No entry for today falls back to defaults", func(t *testing.T) {
		dto := validDTO()
		dto.OperatingHours = []byte(`[{"open":"08:00","close":"20:00","day":0}]`)

		p := FromDTOAt(dto, wednesday)

		assert.Equal(t, 9, p.WorkStartAt.Hour())
		assert.Equal(t, 22, p.WorkEndAt.Hour())
	})

	t.Run("Malformed clock string falls back to defaults", func(t *testing.T) {
		dto := validDTO()
		dto.OperatingHours = []byte(`[{"open":"1030","close":"21:15","day":3}]`)

		p := FromDTOAt(dto, wednesday)

		assert.Equal(t, 9, p.WorkStartAt.Hour())
		assert.Equal(t, 22, p.WorkEndAt.Hour())
	})

	t.Run("Missing price defaults to zero", func(t *testing.T) {
		dto := validDTO()
		dto.MinPrice = nil

		p := FromDTOAt(dto, wednesday)
		assert.Equal(t, 0.0, p.Price)
	})

	t.Run("Work window ordered within the day", func(t *testing.T) {
		p := FromDTOAt(validDTO(), wednesday)
		assert.True(t, p.WorkStartAt.Before(p.WorkEndAt))
	})
}

func TestParseClock(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		h, m, err := parseClock("09:05")
		require.NoError(t, err)
		assert.Equal(t, 9, h)
		assert.Equal(t, 5, m)
	})

	t.Run("Missing colon", func(t *testing.T) {
		_, _, err := parseClock("0905")
		assert.Error(t, err)
	})

	t.Run("Non numeric", func(t *testing.T) {
		_, _, err := parseClock("ab:cd")
		assert.Error(t, err)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, _, err := parseClock("25:00")
		assert.Error(t, err)

		_, _, err = parseClock("10:75")
		assert.Error(t, err)
	})
}
