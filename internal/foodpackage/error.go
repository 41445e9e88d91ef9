package foodpackage

import "errors"

var (
	ErrPackageNotFound = errors.New("food package not found")
)
