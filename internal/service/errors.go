package service

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameExists          = errors.New("game already exists")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrArchiveDisabled     = errors.New("archive disabled")
)
