package loader

import "errors"

var (
	// ErrOpenFile indicates the CSV file could not be opened.
	ErrOpenFile = errors.New("open ranking file")
	// ErrEmptyFile indicates the CSV carried no data rows.
	ErrEmptyFile = errors.New("ranking file has no data rows")
	// ErrMalformedCSV indicates the CSV could not be parsed.
	ErrMalformedCSV = errors.New("malformed csv")
	// ErrMissingColumns indicates a required header column is absent.
	ErrMissingColumns = errors.New("missing required columns")
)
