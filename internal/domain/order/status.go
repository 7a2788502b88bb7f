package order

import (
	"fmt"
	"time"
)

// Status is a step in an order's lifecycle
type Status int

const (
	StatusPaymentWaiting    Status = 0
	StatusOrderPlaced       Status = 1
	StatusProductPackaging  Status = 2
	StatusReadyForShipment  Status = 3
	StatusOnTheWay          Status = 4
	StatusDroppedInDelivery Status = 5
	StatusDelivered         Status = 6
	StatusCanceled          Status = 7
)

var statusNames = map[Status]string{
	StatusPaymentWaiting:    "PAYMENT_WAITING",
	StatusOrderPlaced:       "ORDER_PLACED",
	StatusProductPackaging:  "PRODUCT_PACKAGING",
	StatusReadyForShipment:  "READY_FOR_SHIPMENT",
	StatusOnTheWay:          "ON_THE_WAY",
	StatusDroppedInDelivery: "DROPPED_IN_DELIVERY",
	StatusDelivered:         "DELIVERED",
	StatusCanceled:          "CANCELED",
}

// String returns the status name
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// ParseStatus maps a status name to its value
func ParseStatus(name string) (Status, bool) {
	for status, n := range statusNames {
		if n == name {
			return status, true
		}
	}
	return 0, false
}

// StatusEntry is the estimated time of one lifecycle step
type StatusEntry struct {
	Type          Status
	EstimatedTime time.Time
}

// StatusView is a lifecycle step as shown to the buyer
type StatusView struct {
	Type          Status
	EstimatedTime time.Time
	Active        bool
}

// BuildTimeline creates the estimates for every step from payment to delivery.
// Step n is expected n days after now.
func BuildTimeline(now time.Time) []StatusEntry {
	entries := make([]StatusEntry, 0, int(StatusDelivered)+1)
	for s := StatusPaymentWaiting; s <= StatusDelivered; s++ {
		entries = append(entries, StatusEntry{
			Type:          s,
			EstimatedTime: now.AddDate(0, 0, int(s)),
		})
	}
	return entries
}
