package types

import "github.com/gin-gonic/gin"

// Error taxonomy codes, used internally for classification and logging.
// The wire format is a plain {"message": ...} body with the matching
// HTTP status.
const (
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeInternal     = "INTERNAL_ERROR"
)

// ErrorBody builds the client-facing error payload.
func ErrorBody(message string) gin.H {
	return gin.H{"message": message}
}

// InternalErrorBody is the generic payload for store failures. Internal
// detail is logged server-side, never sent to the client.
func InternalErrorBody() gin.H {
	return gin.H{"message": "An internal error occurred"}
}
