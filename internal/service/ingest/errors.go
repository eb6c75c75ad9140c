package ingest

import "errors"

var (
	ErrUnknownEntity = errors.New("unknown entity type")
)
