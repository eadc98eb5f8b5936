package rental

import "errors"

var (
	// ErrVehicleNotFound means the booked vehicle id has no record in the
	// category's vehicle collection.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrOutOfStock means the vehicle has no available units left.
	ErrOutOfStock = errors.New("vehicle out of stock")
	// ErrReservationNotFound means the reservation document is absent.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrAlreadyCancelled guards against releasing stock twice for the same
	// reservation.
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
)
