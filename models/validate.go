package models

import "regexp"

// Identifier and contact formats. Customer IDs and account numbers are part
// of the data model, not display concerns, so they are validated at
// construction time.
var (
	customerIDPattern = regexp.MustCompile(`^C\d{3}$`)
	accountNoPattern  = regexp.MustCompile(`^ACC\d{3}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidCustomerID reports whether id matches the C### format.
func ValidCustomerID(id string) bool {
	return customerIDPattern.MatchString(id)
}

// ValidAccountNo reports whether no matches the ACC### format.
func ValidAccountNo(no string) bool {
	return accountNoPattern.MatchString(no)
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
