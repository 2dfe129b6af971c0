package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey int

const (
	AppKey ContextKey = iota
	LoggerKey
	RequestStart
	ParamsKey
	PageContext
	NavItemsKey
)

// Validate is the shared validator instance. Custom rules are registered by
// domain packages at init time.
var Validate = validator.New(validator.WithRequiredStructEnabled())
