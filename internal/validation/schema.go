package validation

import (
	"github.com/xeipuuv/gojsonschema"
)

// requestSchema is the structural contract of an invoice request.
const requestSchema = `{
  "type": "object",
  "properties": {
    "buyerId":  {"type": "string", "minLength": 1},
    "sellerId": {"type": "string", "minLength": 1},
    "date":     {"type": "string", "minLength": 1},
    "hours":    {"type": "number"},
    "price":    {"type": "number"},
    "invoice":  {"type": "object"}
  },
  "required": ["buyerId", "sellerId", "date", "hours", "price"],
  "additionalProperties": false
}`

func compileSchema() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
}

// schemaFieldErrors converts schema violations into field errors. Required-property
// violations are reported against the missing property rather than the root.
func schemaFieldErrors(result *gojsonschema.Result) []FieldError {
	out := make([]FieldError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if prop, ok := re.Details()["property"].(string); ok && re.Type() == "required" {
			field = prop
		}
		out = append(out, FieldError{Field: field, Message: re.Description()})
	}
	return out
}
