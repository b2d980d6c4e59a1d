package errors

import "fmt"

var (
	ErrInvalidContent       = fmt.Errorf("content must be 1 to 280 emoji characters")
	ErrUnauthenticated      = fmt.Errorf("caller identity is missing")
	ErrRateLimited          = fmt.Errorf("too many posts, unable to process at this time")
	ErrPostNotFound         = fmt.Errorf("post not found")
	ErrIdentityNotFound     = fmt.Errorf("author identity cannot be resolved")
	ErrStoreUnavailable     = fmt.Errorf("post store unavailable")
	ErrDirectoryUnavailable = fmt.Errorf("identity directory unavailable")
)
