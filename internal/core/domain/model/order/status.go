package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the delivery state of an order. The set is closed: ParseStatus
// and Validate read the same tables. The constants follow the usual delivery
// flow, but updates may set any valid status.
type Status int

const (
	// Unknown (0) catches uninitialised values and is never valid.
	Unknown Status = iota

	// Pending is the status of a freshly placed order.
	Pending

	// FoodProcessing means the restaurant is preparing the order.
	FoodProcessing

	// OutForDelivery means a courier has claimed the order.
	OutForDelivery

	Delivered

	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		FoodProcessing: "Food Processing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		FoodProcessing: "Food Processing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, FoodProcessing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus maps a display name such as "Out for Delivery" onto a Status.
// Matching is exact after trimming surrounding whitespace; anything outside the
// set is rejected with a ValueIsInvalid error.
func ParseStatus(s string) (Status, error) {
	name := strings.TrimSpace(s)
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
