package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrPackageSoldOut      = errors.New("package is sold out")
	ErrPackageUnavailable  = errors.New("package is not available right now")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrQuantityUnavailable = errors.New("requested quantity not available")
)
