package hobbies

// Envelope is the uniform success body. It is a plain map so paginated
// responses can hoist extra top level fields next to data.
type Envelope map[string]any

// ErrorEntry is a single error item in the error body
type ErrorEntry struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorEnvelope is the uniform error body. Every failure, from validation to
// panics, serializes to this shape.
type ErrorEnvelope struct {
	Errors []ErrorEntry `json:"errors"`
}

// SuccessEnvelope builds the standard success body. A nil data renders as an
// empty object so clients never see a null data field.
func SuccessEnvelope(status int, message string, data any) Envelope {
	if data == nil {
		data = map[string]any{}
	}
	env := Envelope{
		"status": status,
		"data":   data,
	}
	if message != "" {
		env["message"] = message
	}
	return env
}

// SuccessWithPagination builds a success body for a listed page. When the page
// is empty data renders as an empty array with no pagination block.
func SuccessWithPagination(status int, message string, page *Page, metaData map[string]any) Envelope {
	env := Envelope{
		"status": status,
	}
	if message != "" {
		env["message"] = message
	}
	if len(metaData) > 0 {
		env["meta_data"] = metaData
	}
	if page == nil || page.Count() == 0 {
		env["data"] = []any{}
		return env
	}
	env["data"] = page.Items
	env["pagination"] = page.Block()
	for k, v := range page.Fields {
		env[k] = v
	}
	return env
}

// NewErrorEnvelope builds the standard error body
func NewErrorEnvelope(status int, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Errors: []ErrorEntry{{Status: status, Message: message}},
	}
}
