package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsValidEmail performs the loose something@something.tld check used by the board forms
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
