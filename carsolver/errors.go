// Public domain.

package carsolver

import "errors"

var (
	// ErrInvalidParams is wrapped by errors for parameters that cannot
	// describe a CAR.
	ErrInvalidParams = errors.New("invalid CAR parameters")

	// ErrFitNotConverged is wrapped by the error returned when the
	// weight fit exhausts its budget.  The CAR returned with it is usable.
	ErrFitNotConverged = errors.New("mixture weight fit did not converge")
)
