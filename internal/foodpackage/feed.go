package foodpackage

import (
	"sync"
	"time"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one change to a business's package list. On the wire the package
// travels under "record" in the raw row shape; see EventFromJSON.
type Event struct {
	Type    EventType   `json:"type"`
	Package FoodPackage `json:"record"`
}

// Publisher delivers package change events to interested subscribers.
type Publisher interface {
	Publish(businessID string, ev Event)
}

// Feed keeps an in-memory package list current by applying change events.
// An update whose revision is not newer than the held copy is dropped, so a
// stale push arriving after a fresher refetch cannot roll the list back.
type Feed struct {
	mu                 sync.Mutex
	items              []FoodPackage
	includeUnavailable bool
	now                func() time.Time
}

func NewFeed(initial []FoodPackage, includeUnavailable bool) *Feed {
	items := make([]FoodPackage, len(initial))
	copy(items, initial)

	return &Feed{
		items:              items,
		includeUnavailable: includeUnavailable,
		now:                time.Now,
	}
}

// Replace swaps the whole list, e.g. after a manual refetch.
func (f *Feed) Replace(items []FoodPackage) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = make([]FoodPackage, len(items))
	copy(f.items, items)
}

// Apply folds one change event into the list.
func (f *Feed) Apply(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev.Type {
	case EventInsert:
		f.applyInsert(ev.Package)
	case EventUpdate:
		f.applyUpdate(ev.Package)
	case EventDelete:
		f.applyDelete(ev.Package.ID)
	}
}

func (f *Feed) applyInsert(pkg FoodPackage) {
	// A repeated insert for a known id degrades to an update.
	for i := range f.items {
		if f.items[i].ID == pkg.ID {
			if pkg.Revision > f.items[i].Revision {
				f.items[i] = pkg
			}
			return
		}
	}

	if !f.includeUnavailable && !pkg.AvailableAt(f.now()) {
		return
	}

	f.items = append([]FoodPackage{pkg}, f.items...)
}

func (f *Feed) applyUpdate(pkg FoodPackage) {
	for i := range f.items {
		if f.items[i].ID == pkg.ID {
			if pkg.Revision > f.items[i].Revision {
				f.items[i] = pkg
			}
			return
		}
	}
}

func (f *Feed) applyDelete(id string) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the current list.
func (f *Feed) Items() []FoodPackage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]FoodPackage, len(f.items))
	copy(out, f.items)
	return out
}
