// Package validate holds pure format checks for operator-supplied input.
// Failure is signalled by a boolean false, never an error; callers are
// responsible for surfacing the rejection to the operator.
package validate

import (
	"regexp"
	"time"

	"github.com/tachbel/hostel-management/internal/model"
)

// emailRe accepts local-part@sub.domain.tld where the TLD is one of the
// Kenyan academic/commercial domains the hostel deals with.
var emailRe = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+(ac\.ke|com|org|co\.ke)$`)

// phoneRe accepts Kenyan mobile numbers: exactly ten digits starting 07.
var phoneRe = regexp.MustCompile(`^07\d{8}$`)

// Email reports whether s is an acceptable email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is an acceptable phone number (07XXXXXXXX).
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// ComplaintStatus reports whether s is one of the fixed complaint statuses.
func ComplaintStatus(s string) bool {
	for _, v := range model.ComplaintStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Date parses an ISO YYYY-MM-DD string.  The boolean is false when the
// string does not parse; the zero time is returned in that case.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
