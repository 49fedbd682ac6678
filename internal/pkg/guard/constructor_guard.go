// Package guard detects value objects and commands that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose invariants are established by a
// constructor. Its zero value reports "not constructed", so a literal such as
// PostEventCommand{} fails validation while a value returned by
// NewPostEventCommand passes.
//
// Example:
//
//	var ErrPlaceNotConstructed = errors.New("Place must be created via NewPlace")
//
//	type Place struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPlace(name string) (Place, error) {
//	    if name == "" {
//	        return Place{}, errors.New("place is required")
//	    }
//	    return Place{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Place) Validate() error {
//	    return p.guard.Validate(ErrPlaceNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
