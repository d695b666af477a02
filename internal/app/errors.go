package service

import "errors"

var (
	// ErrYearNotFound indicates the requested year, or the preceding year
	// needed for a comparison, is absent from the dataset.
	ErrYearNotFound = errors.New("year not found")
	// ErrInvalidArgument indicates a request parameter is out of range or
	// unrecognized.
	ErrInvalidArgument = errors.New("invalid argument")
)
