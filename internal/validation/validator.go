package validation

import (
	"encoding/json"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// Validator gates invoice requests. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
	v      *validatorv10.Validate
}

// New returns a validator with the request schema compiled and the isodate tag registered.
func New() (*Validator, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}

	v := validatorv10.New()
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return nil, fmt.Errorf("register isodate: %w", err)
	}

	return &Validator{schema: schema, v: v}, nil
}

// isoDate accepts ISO-8601 dates and date-times.
func isoDate(fl validatorv10.FieldLevel) bool {
	_, err := invoices.ParseDate(fl.Field().String())
	return err == nil
}

// Validate checks body and returns the typed request together with its raw tree. Every
// failure, malformed JSON included, is a *ValidationError.
func (val *Validator) Validate(body []byte) (*invoices.Request, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, newValidationError("body", "malformed JSON: "+err.Error())
	}

	result, err := val.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, newValidationError("body", err.Error())
	}
	if !result.Valid() {
		return nil, &ValidationError{Fields: schemaFieldErrors(result)}
	}

	var req InvoiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, newValidationError("body", err.Error())
	}
	if err := val.v.Struct(req); err != nil {
		return nil, structErrors(err)
	}

	return &invoices.Request{
		BuyerID:  req.BuyerID,
		SellerID: req.SellerID,
		Date:     req.Date,
		Hours:    *req.Hours,
		Price:    *req.Price,
		Raw:      doc.(map[string]interface{}),
	}, nil
}

func structErrors(err error) *ValidationError {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return newValidationError("body", err.Error())
	}
	out := &ValidationError{}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return out
}
