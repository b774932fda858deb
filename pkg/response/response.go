package response

// Body is the uniform envelope returned by every endpoint:
// status is "success" or "error", message and data are optional.
type Body struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(data any) Body {
	return Body{
		Status: "success",
		Data:   data,
	}
}

func SuccessMessage(message string, data any) Body {
	return Body{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func Error(message string) Body {
	return Body{
		Status:  "error",
		Message: message,
	}
}
