package validation

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 30

	// String lengths
	MaxNameLength  = 20
	MaxEmailLength = 30

	// ExpiryDateLayout is the dd-MM-yyyy wire format of card expiry dates.
	ExpiryDateLayout = "02-01-2006"
)
