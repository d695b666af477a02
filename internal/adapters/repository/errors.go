package repository

import "errors"

// Sentinel kinds for table construction errors.
var (
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrDuplicateRecord = errors.New("duplicate (university, year) record")
)
