package dataset

import "errors"

// Sentinel error kinds for this package. Both are fatal at startup.
var (
	// ErrNotFound reports a missing dataset file. It also matches fs.ErrNotExist.
	ErrNotFound = errors.New("dataset not found")
	// ErrParse reports a dataset that could not be read into the table.
	ErrParse = errors.New("dataset parse failed")
)
