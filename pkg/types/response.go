package types

// SuccessEnvelope wraps every 2xx body served to the kiosk.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error. RequestID echoes the X-Request-Id
// header so kiosk staff can quote it when a checkout fails.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
