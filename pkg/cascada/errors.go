package cascada

import "errors"

// Sentinel errors for every failure mode in the package. All of them indicate
// a construction mistake at the call site rather than a transient condition;
// nothing is retried internally. Wrap sites use fmt.Errorf with %w so callers
// can match with errors.Is.
var (
	// ErrNotActive is returned by operations on a disposed Context.
	ErrNotActive = errors.New("cascada: context is disposed")

	// ErrBadClass is returned when a produced class fails the class-token
	// grammar, which indicates a classifier bug or a malformed manual class.
	ErrBadClass = errors.New("cascada: invalid class token")

	// ErrBadStatements is returned when a fragment carries empty statements.
	ErrBadStatements = errors.New("cascada: empty fragment statements")

	// ErrClassCollision is returned when two fragments share a class but
	// differ in statements. The identifier no longer determines its content,
	// so the affected Require fails; unrelated classes stay usable.
	ErrClassCollision = errors.New("cascada: class collision")

	// ErrPlaceholderUnresolved is returned when a named placeholder in a
	// template resolves to nothing usable.
	ErrPlaceholderUnresolved = errors.New("cascada: unresolved placeholder")

	// ErrBadParameterValue is returned when a classification parameter is not
	// representable as a primitive string or number.
	ErrBadParameterValue = errors.New("cascada: parameter value is not a primitive")
)
