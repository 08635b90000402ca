package validation

// InvoiceRequest is the payload for POST /.
type InvoiceRequest struct {
	BuyerID  string                 `json:"buyerId" validate:"required"`      // buyer half of the config tag
	SellerID string                 `json:"sellerId" validate:"required"`     // seller half of the config tag
	Date     string                 `json:"date" validate:"required,isodate"` // ISO-8601 date or date-time
	Hours    *float64               `json:"hours" validate:"required"`        // billed hours
	Price    *float64               `json:"price" validate:"required"`        // net price
	Invoice  map[string]interface{} `json:"invoice,omitempty"`                // optional override block
}
