package quarry

import (
	"errors"
	"fmt"
)

// ColValNumMismatchError indicates that an INSERT row's arity disagrees
// with the declared column list.
type ColValNumMismatchError struct {
	ColLen int
	ValLen int
}

func (e ColValNumMismatchError) Error() string {
	return fmt.Sprintf("columns and values length mismatch: %d columns, %d values", e.ColLen, e.ValLen)
}

// ErrUnableToParseQuery is returned by Audit when a statement has no
// principal table to report against.
var ErrUnableToParseQuery = errors.New("unable to parse query")
