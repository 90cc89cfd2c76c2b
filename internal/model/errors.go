package model

import "errors"

var (
	// ErrNotFound is returned by stores when the key holds no document.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by create-if-absent writes when the key is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrContention reports a concurrent modification or an aborted transaction.
	ErrContention = errors.New("concurrent modification")
	// ErrUnavailable reports a store that cannot serve the request right now.
	ErrUnavailable = errors.New("store unavailable")
)
