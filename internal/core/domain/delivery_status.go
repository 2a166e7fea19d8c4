package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
)

// DeliveryStatus is the physical progress of a booking.
type DeliveryStatus string

const (
	DeliveryNotStarted     DeliveryStatus = "not_started"
	DeliveryPickupAssigned DeliveryStatus = "pickup_assigned"
	DeliveryPickedUp       DeliveryStatus = "picked_up"
	DeliveryInTransit      DeliveryStatus = "in_transit"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryCancelled      DeliveryStatus = "cancelled"
)

// ErrInvalidTransition is returned when strict transitions reject a move.
var ErrInvalidTransition = fmt.Errorf("%w: delivery status transition not allowed", apperrors.ErrValidation)

// forward path, in order. cancelled sits outside it.
var deliveryPath = []DeliveryStatus{
	DeliveryNotStarted,
	DeliveryPickupAssigned,
	DeliveryPickedUp,
	DeliveryInTransit,
	DeliveryOutForDelivery,
	DeliveryDelivered,
}

func (s DeliveryStatus) position() int {
	for i, st := range deliveryPath {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known delivery status.
func (s DeliveryStatus) IsValid() bool {
	return s == DeliveryCancelled || s.position() >= 0
}

// IsTerminal reports whether no further movement is expected.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// CanTransitionTo reports whether next is the immediate successor of s on the
// forward path, or a cancellation of a non-terminal booking. Re-applying the
// current status is always allowed.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == DeliveryCancelled {
		return true
	}
	from := s.position()
	return from >= 0 && next.position() == from+1
}

// ParseDeliveryStatus normalises and validates a status string.
func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	s := DeliveryStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown delivery status %q", apperrors.ErrValidation, raw)
	}
	return s, nil
}
