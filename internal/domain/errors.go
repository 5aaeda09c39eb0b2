package domain

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("an active session already exists")
)
