package invoices

import "errors"

// ErrInvoiceNotFound is returned when no default configuration exists for a tag.
var ErrInvoiceNotFound = errors.New("invoice template not found")

// KindInvoiceNotFound is the error name reported to HTTP callers for ErrInvoiceNotFound.
const KindInvoiceNotFound = "InvoiceNotFound"
