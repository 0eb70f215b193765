package zerror

// Status classifies a ZError independently of any transport.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBadRequest
	StatusValidationFailed
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusMethodNotAllowed
	StatusConflict
	StatusInternalServerError
	StatusServiceUnavailable
)

var statusNames = map[Status]string{
	StatusUnknown:             "UNKNOWN",
	StatusBadRequest:          "BAD_REQUEST",
	StatusValidationFailed:    "VALIDATION_FAILED",
	StatusUnauthorized:        "UNAUTHORIZED",
	StatusForbidden:           "FORBIDDEN",
	StatusNotFound:            "NOT_FOUND",
	StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	StatusConflict:            "CONFLICT",
	StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

// String returns the string representation of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}
