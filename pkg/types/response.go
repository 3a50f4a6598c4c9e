package types

// SuccessEnvelope wraps every 2xx JSON body: `{"data": ...}`.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Message falls back to the code's
// generic text unless the code allows surfacing the internal message.
// Details is only populated for validation failures (per-field
// messages) and dependency errors.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx JSON body: `{"error": {...}}`.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
