package domain

import "fmt"

// Seat assignment is pure and deterministic: two computations over the same
// taken-seat set always pick the same seat, so a retried request reproduces
// its answer. The database's unique index on (manifest_id, seat_number)
// remains the final arbiter; these checks only fail fast.

// ErrSeatTaken builds the conflict returned both by the in-memory check and
// by the store-level duplicate-key translation, so callers see one shape.
func ErrSeatTaken(seat int) error {
	return ConflictError{
		Resource: "seat",
		Msg:      fmt.Sprintf("seat %d is already taken", seat),
		Code:     CodeSeatTaken,
	}
}

func ErrManifestNotFound() error {
	return NotFoundError{Resource: "manifest", Code: CodeManifestNotFound}
}

func ErrNoOpenManifest() error {
	return NotFoundError{Resource: "open manifest for this vehicle", Code: CodeNoOpenManifest}
}

func ErrManifestLocked() error {
	return StateError{Msg: "manifest is locked and cannot accept new passengers", Code: CodeManifestLocked}
}

func ErrManifestFull() error {
	return StateError{Msg: "manifest is at full capacity", Code: CodeManifestFull}
}

// NextFreeSeat returns the lowest seat number in [1, capacity] not present in
// taken. CheckCapacity normally runs first, so exhaustion here means the
// roster changed between the two reads.
func NextFreeSeat(capacity int, taken map[int]bool) (int, error) {
	for s := 1; s <= capacity; s++ {
		if !taken[s] {
			return s, nil
		}
	}
	return 0, StateError{Msg: "no available seat on this manifest", Code: CodeNoAvailableSeat}
}

// AssignSeat decides the seat a new passenger receives. A requested seat is
// honoured exactly or rejected; it is never silently replaced.
func AssignSeat(capacity int, taken map[int]bool, requested *int) (int, error) {
	if requested == nil {
		return NextFreeSeat(capacity, taken)
	}
	seat := *requested
	if seat < 1 || seat > capacity {
		return 0, ValidationError{
			Field: "seatNumber",
			Msg:   fmt.Sprintf("seat number must be between 1 and %d", capacity),
			Code:  CodeSeatOutOfRange,
		}
	}
	if taken[seat] {
		return 0, ErrSeatTaken(seat)
	}
	return seat, nil
}

// CheckCapacity rejects additions to a locked or full manifest. Lock wins
// over full so a finalized manifest always reports manifest_locked.
func CheckCapacity(locked bool, passengerCount, capacity int) error {
	if locked {
		return ErrManifestLocked()
	}
	if passengerCount >= capacity {
		return ErrManifestFull()
	}
	return nil
}
