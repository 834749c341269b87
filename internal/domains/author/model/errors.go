package model

import "errors"

var (
	ErrAuthorNotFound      = errors.New("author not found")
	ErrDuplicateAuthorName = errors.New("author with this name already exists")
)
