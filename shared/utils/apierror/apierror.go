package apierror

import "github.com/gin-gonic/gin"

// APIError is one kind in the closed set of client-visible failures. Each
// kind is mapped to its HTTP status and numeric code exactly once, here;
// handlers and middleware pick a value and respond with it.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"errorCode,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Error codes 4xxx are the auth chain contract; 1xxx are login outcomes.
// The codes and statuses are consumed by existing clients and must not
// change.
var (
	ErrHeaderNotFound    = &APIError{Status: 401, Code: 4001, Message: "Authorization header is required"}
	ErrMalformedLogin    = &APIError{Status: 401, Code: 4002, Message: "Invalid authorization format. Expected Bearer {token}"}
	ErrTokenBlacklisted  = &APIError{Status: 401, Code: 4003, Message: "Token has been revoked"}
	ErrInvalidToken      = &APIError{Status: 401, Code: 4004, Message: "Invalid or expired token"}
	ErrTooManyRequests   = &APIError{Status: 429, Code: 4005, Message: "Too many requests. Please try again later."}
	ErrUserNotFound      = &APIError{Status: 404, Code: 1002, Message: "Invalid credentials"}
	ErrIncorrectPassword = &APIError{Status: 400, Code: 1009, Message: "Invalid credentials"}
	ErrAlreadyRevoked    = &APIError{Status: 400, Message: "Token already revoked"}
	ErrForbidden         = &APIError{Status: 403, Message: "Access denied"}
	ErrStoreUnavailable  = &APIError{Status: 503, Message: "Could not verify credentials. Please try again later."}
)

// Respond writes the error as the response body.
func Respond(c *gin.Context, err *APIError) {
	c.JSON(err.Status, err)
}

// Abort writes the error and stops the middleware chain.
func Abort(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.Status, err)
}
