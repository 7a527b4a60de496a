package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID            = errors.New("id is required")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrEmptyName          = errors.New("name is required")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrUnknownAccountRef  = errors.New("transaction references unknown account")
	ErrZeroDate           = errors.New("date is required")
	ErrInvalidTarget      = errors.New("goal target must be positive")
	ErrNegativeSaved      = errors.New("goal saved amount cannot be negative")
	ErrInvalidInterval    = errors.New("invalid recurrence interval")
)
