package ingest

import "errors"

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnknownKind     = errors.New("unknown transaction type")
	ErrMissingAmount   = errors.New("missing amount")
	ErrNegativeAmount  = errors.New("negative amount")
)
