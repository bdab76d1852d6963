package models

// ===== API ENVELOPES =====

// SuccessResponse wraps every successful API payload: {"data": T}.
// Remote clients rely on this envelope shape.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
