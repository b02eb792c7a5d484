package http

const (
	CodeUnknown         = "UNKNOWN"
	CodeInternal        = "INTERNAL_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeRequestTooLarge = "REQUEST_TOO_LARGE"
	CodeInvalidForm     = "INVALID_FORM"
)
