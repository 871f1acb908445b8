package repository

import "errors"

var (
	// ErrBookNotFound is returned by a MetadataRepository when the title matches nothing.
	ErrBookNotFound = errors.New("book not found")
	// ErrMetadataUnavailable wraps transport and decoding failures of the metadata source.
	ErrMetadataUnavailable = errors.New("book metadata source unavailable")
	// ErrCacheMiss is returned by a ResultCache when no entry exists for a title.
	ErrCacheMiss = errors.New("cache miss")
)
