// Package sheets defines the ports for reading spreadsheet data.
package sheets

import (
	"context"
	"errors"
)

var (
	// ErrAuth marks invalid or expired service credentials.
	ErrAuth = errors.New("sheets: authentication failed")
	// ErrFetch marks network or permission failures while reading ranges.
	ErrFetch = errors.New("sheets: fetch failed")
)

// RangeReader reads a range of cells in A1 notation and returns them as a
// row-major matrix of trimmed strings. Implementations must tolerate ragged
// rows (the remote API drops trailing empty cells).
type RangeReader interface {
	ReadRange(ctx context.Context, rng string) ([][]string, error)
}
