package validation

import (
	"github.com/gin-gonic/gin"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// BindAndValidate reads the JSON body of c and runs it through v.
// The returned error is always a *ValidationError; the caller decides how to report it.
func BindAndValidate(c *gin.Context, v *Validator) (*invoices.Request, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, newValidationError("body", err.Error())
	}
	return v.Validate(body)
}
