package validation

// Error messages
const (
	ErrMsgReadData               = "failed to read data file"
	ErrMsgParseData              = "failed to parse JSON data"
	ErrMsgLoadSchema             = "failed to load schema"
	ErrMsgParseSchema            = "failed to parse schema JSON"
	ErrMsgCompileSchema          = "failed to compile schema"
	ErrMsgSchemaNotFound         = "schema file not found"
	ErrMsgSchemaValidationFailed = "schema validation failed"
	ErrMsgValidation             = "validation error"
)
