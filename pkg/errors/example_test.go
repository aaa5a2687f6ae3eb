// Package errors provides examples of structured error handling in repool.
package errors_test

import (
	"fmt"

	"github.com/ajitpratap0/repool/pkg/errors"
)

// Example demonstrates basic error creation and detail chaining.
func Example() {
	err := errors.New(errors.ErrorTypeConflict, "duplicate pool name")

	err = err.WithDetail("name", "connections").
		WithDetail("index", 3)

	fmt.Println(err.Error())
	fmt.Println(errors.IsType(err, errors.ErrorTypeConflict))
	// Output:
	// conflict: duplicate pool name
	// true
}

// ExampleWrap demonstrates wrapping an underlying error with context.
func ExampleWrap() {
	cause := fmt.Errorf("open pools.yaml: no such file")
	err := errors.Wrap(cause, errors.ErrorTypeConfig, "failed to load pool configuration")

	fmt.Println(err.Error())
	// Output:
	// config: failed to load pool configuration: open pools.yaml: no such file
}
