package model

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrDuplicateBookName = errors.New("book with this name already exists")
)
