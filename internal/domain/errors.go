package domain

import "errors"

// Domain errors - use these for consistent error handling
var (
	// Message errors
	ErrMessageNotFound = errors.New("message not found")
	ErrNotAuthor       = errors.New("message belongs to another user")
	ErrFileMessage     = errors.New("file messages cannot be edited")
	ErrEmptyMessage    = errors.New("message cannot be empty")

	// Storage errors
	ErrObjectNotFound = errors.New("object not found")
)
