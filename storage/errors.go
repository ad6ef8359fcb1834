package storage

import "errors"

var ErrPollNotFound = errors.New("poll not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")
