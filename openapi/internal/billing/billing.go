// Package billing holds fixture types for cross-package naming tests. Its
// Address shares a simple name with shipping.Address and references it, so
// the second type is met while the first is still being compiled.
package billing

import "github.com/quillapi/quill/openapi/internal/shipping"

type Address struct {
	Street  string           `json:"street"`
	ShipTo  shipping.Address `json:"ship_to"`
	Primary bool             `json:"primary"`
}
