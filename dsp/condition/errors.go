package condition

import "errors"

// ErrNumericalPrecondition reports input the transforms are undefined for:
// empty series, non-positive sampling parameters, or a PSD that is not
// strictly positive and finite over the queried band.
var ErrNumericalPrecondition = errors.New("condition: numerical precondition violated")
