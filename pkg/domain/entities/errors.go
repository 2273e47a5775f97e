package entities

import "errors"

var (
	// ErrInvalidParameter covers negative costs or quantities and a holding cost that cannot feed EOQ
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMissingFixedQuantity is returned when FOQ is requested without a fixed quantity
	ErrMissingFixedQuantity = errors.New("missing fixed order quantity")
	// ErrMalformedDemandSequence is returned for demand of the wrong length or with negative values
	ErrMalformedDemandSequence = errors.New("malformed demand sequence")
)
