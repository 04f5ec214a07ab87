package apperrors

// Authentication errors (AUTH_*)
const (
	ErrCodeTokenMissing   = "AUTH_TOKEN_MISSING"
	ErrCodeTokenExpired   = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid   = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed = "AUTH_TOKEN_MALFORMED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden         = "AUTHZ_FORBIDDEN"
	ErrCodeMissingCapability = "AUTHZ_MISSING_CAPABILITY"
	ErrCodeInvalidRole       = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeInvalidInput  = "VALIDATION_INVALID_INPUT"
	ErrCodeInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ErrCodeBodyTooLarge  = "VALIDATION_BODY_TOO_LARGE"
)

// Option store errors (OPTIONS_*)
const (
	ErrCodeOptionsLoadFailed   = "OPTIONS_LOAD_FAILED"
	ErrCodeOptionsSaveFailed   = "OPTIONS_SAVE_FAILED"
	ErrCodeOptionsCorrupt      = "OPTIONS_CORRUPT"
	ErrCodeOptionsBackupFailed = "OPTIONS_BACKUP_FAILED"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeCacheError      = "INTERNAL_CACHE_ERROR"
	ErrCodeRenderFailed    = "INTERNAL_RENDER_FAILED"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
	ErrCodeUnavailable     = "INTERNAL_SERVICE_UNAVAILABLE"
)
