package domain

import "errors"

var (
	// ErrEmptyDataset means no record survived parsing, so nothing can be averaged.
	ErrEmptyDataset = errors.New("no valid observations")

	// ErrUndefinedInterval means no positive gap exists between consecutive time stamps.
	ErrUndefinedInterval = errors.New("averaging time cannot be inferred")

	// ErrInvalidLayout is returned for record layouts with negative or duplicated columns.
	ErrInvalidLayout = errors.New("invalid record layout")

	// ErrInvalidBounds is returned when the flux censoring interval is empty.
	ErrInvalidBounds = errors.New("invalid flux bounds")
)
