package app

import "errors"

// ErrNotInitialized is returned by commands run without an App in their context
var ErrNotInitialized = errors.New("application not initialized")
