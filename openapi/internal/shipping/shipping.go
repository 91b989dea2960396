// Package shipping holds fixture types for cross-package naming tests.
package shipping

type Address struct {
	Carrier string `json:"carrier"`
	ZIP     string `json:"zip"`
}
