package model

import "errors"

var (
	ErrPublisherNotFound      = errors.New("publisher not found")
	ErrDuplicatePublisherName = errors.New("publisher with this name already exists")
)
