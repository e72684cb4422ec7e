package service

// Error codes carried in failure envelopes. Transport maps these to HTTP
// statuses; raw store errors never reach a client.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeRoleInUse      = "ROLE_IN_USE"
	CodeValidation     = "VALIDATION_FAILURE"
	CodeStore          = "STORE_ERROR"
)

// Result is the uniform envelope returned by every facade operation. Facade
// methods never return a raw error: internal failures are caught, logged,
// and converted into a failure envelope with a safe message.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a classification code.
func Fail(message, code string) Result {
	return Result{Success: false, Message: message, Error: code}
}

// Page is the data payload for listing operations.
type Page struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
