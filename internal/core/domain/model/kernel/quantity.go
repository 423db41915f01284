package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// CheckAdjustment reports whether a proposed quantity adjustment can be applied to
// a line without exceeding its total quantity. It is the single invariant check
// behind every cumulative cancellation/return counter in the model.
//
// Parameters:
//   - existing: quantity already consumed by prior cancellations/returns on the line
//   - adjustment: quantity requested by the new event
//   - total: the line's original ordered/shipped quantity
//
// Returns true iff existing + adjustment <= total. A zero adjustment always passes.
// The function is pure; callers must reject the triggering event without mutating
// any record when it returns false.
func CheckAdjustment(existing, adjustment, total int) bool {
	return existing+adjustment <= total
}

// Adjust validates and applies a quantity adjustment, returning the new cumulative
// value. Negative inputs are invalid and rejected before the guard check, per the
// contract that malformed adjustments never reach the guard.
//
// Returns:
//   - the new cumulative quantity on success
//   - a ValueIsOutOfRangeError for negative inputs
//   - a QuantityExceededError naming the line when the guard fails
//
// paramName identifies the affected line in the returned error, e.g.
// "order O1 entry 2". Entities never mutate their counters directly; they call
// Adjust and store the result, which keeps the monotonicity invariant in one place.
func Adjust(paramName string, existing, adjustment, total int) (int, error) {
	if existing < 0 || adjustment < 0 || total < 0 {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(
			paramName,
			adjustment,
			0,
			total,
			fmt.Errorf("quantities must not be negative (existing %d, adjustment %d, total %d)",
				existing, adjustment, total),
		)
	}

	if !CheckAdjustment(existing, adjustment, total) {
		return 0, errs.NewQuantityExceededError(paramName, existing, adjustment, total)
	}

	return existing + adjustment, nil
}
