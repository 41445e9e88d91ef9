package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Order struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	BusinessID   string     `json:"businessId"`
	PackageID    string     `json:"packageId"`
	PackageName  string     `json:"packageName"`
	BusinessName string     `json:"businessName"`
	Quantity     int        `json:"quantity"`
	Total        float64    `json:"total"`
	Status       Status     `json:"status"`
	PickupStart  *time.Time `json:"pickupStart,omitempty"`
	PickupEnd    *time.Time `json:"pickupEnd,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Upcoming reports whether the order still needs a pickup.
func (o *Order) Upcoming() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// History is the order list as the client renders it: reservations
// awaiting pickup first, everything settled below.
type History struct {
	Upcoming []*Order `json:"upcoming"`
	Past     []*Order `json:"past"`
}
