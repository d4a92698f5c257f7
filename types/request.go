package types

// GenerateRequest is the body of POST /generate. Message is a pointer so an
// absent field can be told apart from an empty string.
type GenerateRequest struct {
	Message *string `json:"message" binding:"required"`
}
