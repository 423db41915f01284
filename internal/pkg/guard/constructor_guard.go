// Package guard implements the constructor guard pattern used by commands and
// domain objects to reject zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// provided for an object that was not created through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embedding a guard in
// a struct lets Validate distinguish constructor-built instances from zero values,
// which keeps domain invariants from being bypassed by direct struct literals.
//
// Example:
//
//	type ConfirmOrderCommand struct {
//	    orderCode string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewConfirmOrderCommand(code string) (ConfirmOrderCommand, error) {
//	    if code == "" {
//	        return ConfirmOrderCommand{}, errs.NewValueIsRequiredError("orderCode")
//	    }
//	    return ConfirmOrderCommand{orderCode: code, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructor-built objects. For zero-value objects it
// returns validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
