package invoices

// Request is a validated invoice request. Raw holds the request body as a generic
// key/value tree, including the optional invoice override block; it is the last (highest
// precedence) merge source.
type Request struct {
	BuyerID  string
	SellerID string
	Date     string
	Hours    float64
	Price    float64
	Raw      map[string]interface{}
}

// Tag returns the store key for the request's seller/buyer pair.
func (r *Request) Tag() string {
	return Tag(r.BuyerID, r.SellerID)
}

// DefaultConfig is a stored per seller/buyer configuration record. Besides country and
// currency it carries arbitrary seller/buyer metadata consumed by the template.
type DefaultConfig map[string]interface{}

// Country is the locale used for currency formatting (e.g. "PL").
func (c DefaultConfig) Country() string {
	s, _ := c["country"].(string)
	return s
}

// Currency is the ISO 4217 currency code (e.g. "PLN").
func (c DefaultConfig) Currency() string {
	s, _ := c["currency"].(string)
	return s
}

// Product is the computed line item.
type Product struct {
	Information string `json:"information"`
	Price       string `json:"price"`
}

// Payment holds the computed payment amounts.
type Payment struct {
	ToPayInNumbers string `json:"toPayInNumbers"`
}

// ComputedFields are derived from the request and the default config on every request.
type ComputedFields struct {
	DateOfExposure string  `json:"dateOfExposure"`
	DocumentDate   string  `json:"documentDate"`
	DateOfSell     string  `json:"dateOfSell"`
	Product        Product `json:"product"`
	Payment        Payment `json:"payment"`
}

// Map returns the fields as a key/value tree using the template key names.
func (f ComputedFields) Map() map[string]interface{} {
	return map[string]interface{}{
		"dateOfExposure": f.DateOfExposure,
		"documentDate":   f.DocumentDate,
		"dateOfSell":     f.DateOfSell,
		"product": map[string]interface{}{
			"information": f.Product.Information,
			"price":       f.Product.Price,
		},
		"payment": map[string]interface{}{
			"toPayInNumbers": f.Payment.ToPayInNumbers,
		},
	}
}

// Context is the merged object handed to the template renderer.
type Context map[string]interface{}
