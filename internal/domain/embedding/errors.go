package embedding

import "errors"

// Sentinel kinds for embedding errors.
var (
	// ErrEncodeFailed marks a provider failure for a given text. Failed
	// results are never cached.
	ErrEncodeFailed = errors.New("embedding encode failed")
)
