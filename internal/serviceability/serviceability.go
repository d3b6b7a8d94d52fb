// Package serviceability answers whether a postal code is inside the
// delivery coverage area.
package serviceability

import "strings"

type Checker struct {
	allowed map[string]bool
}

func NewChecker(pincodes []string) *Checker {
	allowed := make(map[string]bool, len(pincodes))
	for _, p := range pincodes {
		if p = strings.TrimSpace(p); p != "" {
			allowed[p] = true
		}
	}
	return &Checker{allowed: allowed}
}

func (c *Checker) Serviceable(pincode string) bool {
	return c.allowed[strings.TrimSpace(pincode)]
}
