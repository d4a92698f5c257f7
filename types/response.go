package types

const (
	DetailEmptyMessage   = "The 'message' field cannot be empty."
	DetailMissingMessage = "The 'message' field is required."
	DetailMessageType    = "The 'message' field must be a string."
	DetailInvalidBody    = "Invalid request body"
)

type GenerateResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
