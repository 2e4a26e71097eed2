package resolver

import (
	"errors"
	"strings"
)

// ErrInvalidCode rejects anything but a non-empty run of ASCII digits
var ErrInvalidCode = errors.New("stock code must be digits only, e.g. 2399")

// ValidateCode trims surrounding whitespace and checks the code is all decimal digits
func ValidateCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", ErrInvalidCode
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}
