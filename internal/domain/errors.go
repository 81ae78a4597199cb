package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedMarketID = errors.New("malformed market id")
	ErrResolveRejected   = errors.New("resolution rejected by ledger")
)
