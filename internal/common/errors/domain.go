package commonerrors

import "net/http"

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidSecretKey = NewDomainError(
		"INVALID_SECRET_KEY",
		CategoryValidation,
		http.StatusInternalServerError,
		"SECRET_KEY must be at least 32 bytes",
	)

	ErrUnsupportedDatabaseURL = NewDomainError(
		"UNSUPPORTED_DATABASE_URL",
		CategoryValidation,
		http.StatusInternalServerError,
		"DATABASE_URL must start with postgres:// or sqlite://",
	)

	ErrInvalidTrustedProxy = NewDomainError(
		"INVALID_TRUSTED_PROXY",
		CategoryValidation,
		http.StatusInternalServerError,
		"TRUSTED_PROXIES must list IP addresses or CIDR ranges",
	)

	ErrFieldMissing = NewDomainError(
		"FIELD_MISSING",
		CategoryValidation,
		http.StatusBadRequest,
		"please fill in all fields",
	)

	ErrFieldLength = NewDomainError(
		"FIELD_LENGTH",
		CategoryValidation,
		http.StatusBadRequest,
		"field has invalid length",
	)

	ErrDuplicateUsername = NewDomainError(
		"DUPLICATE_USERNAME",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrPasswordMismatch = NewDomainError(
		"PASSWORD_MISMATCH",
		CategoryValidation,
		http.StatusBadRequest,
		"passwords do not match",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrUnauthorized = NewDomainError(
		"UNAUTHORIZED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"please log in to access this page",
	)

	ErrNotFound = NewDomainError(
		"NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"task not found",
	)

	ErrInvalidPayload = NewDomainError(
		"INVALID_PAYLOAD",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid payload",
	)

	ErrUsernameAlreadyExists = NewDomainError(
		"USERNAME_ALREADY_EXISTS",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrInvalidTokenSigningMethod = NewDomainError(
		"INVALID_TOKEN_SIGNING_METHOD",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token signing method",
	)

	ErrMissingTokenClaims = NewDomainError(
		"MISSING_TOKEN_CLAIMS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing required token claims",
	)

	ErrEmptyUUID = NewDomainError(
		"EMPTY_UUID",
		CategoryValidation,
		http.StatusBadRequest,
		"uuid cannot be empty",
	)

	ErrServiceUnavailable = NewDomainError(
		"SERVICE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"service temporarily unavailable",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
