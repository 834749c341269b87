package model

import "errors"

var (
	ErrBookstoreNotFound      = errors.New("bookstore not found")
	ErrDuplicateBookstoreName = errors.New("bookstore with this name already exists")
)
