package discovery

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"foodbox-be/internal/geo"
	"foodbox-be/internal/logger"
	"foodbox-be/internal/partner"

	"go.uber.org/zap"
)

// Filter is a discovery category chip.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterNearby   Filter = "nearby"
	FilterPopular  Filter = "popular"
	FilterNew      Filter = "new"
	FilterDiscount Filter = "discount"
)

const (
	// "New" shows the head of the unfiltered list.
	newTakeCount = 3
	// "Discount" keeps partners below a fixed price ceiling.
	discountPriceCeiling = 2000
)

// View holds the in-memory partner list for one discovery screen and keeps
// the derived filtered view, the selected map marker and the carousel
// position mutually consistent.
type View struct {
	mu sync.Mutex

	partners []partner.Partner
	filtered []partner.Partner

	filter Filter
	query  string

	origin      geo.Coordinates
	originKnown bool

	selectedID    string
	carouselIndex int

	lastSeen time.Time
}

func NewView() *View {
	return &View{
		filter:   FilterAll,
		origin:   geo.DefaultCoordinates,
		lastSeen: time.Now(),
	}
}

// SetPartners replaces the authoritative list wholesale (fetch or refresh).
func (v *View) SetPartners(partners []partner.Partner) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.partners = make([]partner.Partner, len(partners))
	copy(v.partners, partners)
	v.recompute()
}

// SetOrigin records a successful device location fix.
func (v *View) SetOrigin(origin geo.Coordinates) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.origin = origin
	v.originKnown = true
	v.recompute()
}

// UseFallbackOrigin downgrades a denied or failed location fix to a warning
// and keeps the view usable from the default coordinate.
func (v *View) UseFallbackOrigin(reason string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	logger.L().Warn("location unavailable, using fallback coordinates",
		zap.String("reason", reason),
	)

	v.origin = geo.DefaultCoordinates
	v.originKnown = false
	v.recompute()
}

func (v *View) SetFilter(f Filter) error {
	switch f {
	case FilterAll, FilterNearby, FilterPopular, FilterNew, FilterDiscount:
	default:
		return fmt.Errorf("unknown filter %q", f)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = f
	v.recompute()
	return nil
}

func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query = q
	v.recompute()
}

// Partners returns a copy of the current filtered view.
func (v *View) Partners() []partner.Partner {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]partner.Partner, len(v.filtered))
	copy(out, v.filtered)
	return out
}

// SelectMarker records a marker tap and moves the carousel to the matching
// index. The index is -1 when the partner is not in the filtered view.
func (v *View) SelectMarker(id string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.selectedID = id
	for i := range v.filtered {
		if v.filtered[i].ID == id {
			v.carouselIndex = i
			return i
		}
	}
	return -1
}

// SetCarouselIndex records a carousel swipe: the partner at that index
// becomes the selected marker and its coordinates are returned so the map
// can re-center. Out-of-range indexes are ignored.
func (v *View) SetCarouselIndex(index int) (*partner.Partner, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.filtered) {
		return nil, false
	}

	p := v.filtered[index]
	v.carouselIndex = index
	v.selectedID = p.ID
	return &p, true
}

// State is a JSON snapshot of the view.
type State struct {
	Partners       []partner.Partner `json:"partners"`
	Filter         Filter            `json:"filter"`
	Query          string            `json:"query"`
	Origin         geo.Coordinates   `json:"origin"`
	OriginKnown    bool              `json:"originKnown"`
	SelectedMarker string            `json:"selectedMarkerId,omitempty"`
	CarouselIndex  int               `json:"carouselIndex"`
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	partners := make([]partner.Partner, len(v.filtered))
	copy(partners, v.filtered)

	return State{
		Partners:       partners,
		Filter:         v.filter,
		Query:          v.query,
		Origin:         v.origin,
		OriginKnown:    v.originKnown,
		SelectedMarker: v.selectedID,
		CarouselIndex:  v.carouselIndex,
	}
}

// recompute derives the filtered view from the authoritative list.
// Category filter first, then free-text search. Caller holds the lock.
func (v *View) recompute() {
	filtered := make([]partner.Partner, len(v.partners))
	copy(filtered, v.partners)

	switch v.filter {
	case FilterNearby:
		sort.SliceStable(filtered, func(i, j int) bool {
			return geo.SquaredDegreeDistance(filtered[i].Coords, v.origin) <
				geo.SquaredDegreeDistance(filtered[j].Coords, v.origin)
		})
	case FilterPopular:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	case FilterNew:
		if len(filtered) > newTakeCount {
			filtered = filtered[:newTakeCount]
		}
	case FilterDiscount:
		kept := filtered[:0]
		for _, p := range filtered {
			if p.Price < discountPriceCeiling {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	filtered = applySearch(filtered, v.query)

	v.filtered = filtered
	if v.carouselIndex >= len(v.filtered) {
		v.carouselIndex = 0
	}
}

// applySearch keeps partners whose name or address contains the query,
// case-insensitively. A blank query keeps everything.
func applySearch(partners []partner.Partner, query string) []partner.Partner {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return partners
	}

	kept := partners[:0]
	for _, p := range partners {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Address), q) {
			kept = append(kept, p)
		}
	}
	return kept
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = now
}

func (v *View) seenAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}
