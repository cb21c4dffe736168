package utils

import "regexp"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// IsValidPhone reports whether phone is exactly ten digits
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
