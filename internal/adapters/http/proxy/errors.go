package proxy

import "errors"

// Sentinel kinds for proxy errors.
var (
	ErrInvalidTarget  = errors.New("proxy target must be an absolute URL")
	ErrNoPrefixes     = errors.New("proxy needs at least one path prefix")
	ErrUpstream       = errors.New("upstream request failed")
	ErrPrefixConflict = errors.New("proxy prefix conflicts with a console route")
)
