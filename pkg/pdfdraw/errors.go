package pdfdraw

import "errors"

var (
	// ErrInvalidArgument is returned for a missing or malformed source document
	// and for page numbers outside the document.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO is returned when a canvas write or the final save fails.
	ErrIO = errors.New("i/o failure")

	// ErrClosed is returned when the annotator is used after WriteTo or Close.
	ErrClosed = errors.New("annotator closed")
)
