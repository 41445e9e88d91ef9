package partner

import "errors"

var (
	ErrPartnerNotFound = errors.New("partner not found")
)
