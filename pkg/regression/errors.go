package regression

import "errors"

var (
	// ErrInvalidInput indicates that the caller passed fields the model
	// cannot process: mismatched X and y shapes, too few axes, or a
	// spatial shape that disagrees with the fitted coefficients.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFit indicates that Predict was called before any successful
	// Fit stored influence coefficients on the model.
	ErrNotFit = errors.New("model has not been fit")
)
