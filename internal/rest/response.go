package rest

// ResponseError is the body of every non-2xx response.
type ResponseError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
