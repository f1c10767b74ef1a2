package response

type APIResponse[T any] struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Data     T        `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details any    `json:"details,omitempty"`
}
