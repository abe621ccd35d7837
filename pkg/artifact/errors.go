package artifact

import "errors"

// securityViolationError signals an archive member escaping the extraction
// root. Never suppressed: the whole extraction fails.
type securityViolationError struct{ member string }

func (e securityViolationError) Error() string {
	return "path traversal attempt in archive member: " + e.member
}

// ErrSecurityViolation constructs a securityViolationError for member.
func ErrSecurityViolation(member string) error { return securityViolationError{member: member} }

// IsSecurityViolation reports whether err indicates an archive path-traversal
// attempt, unwrapping as needed.
func IsSecurityViolation(err error) bool {
	var e securityViolationError
	return errors.As(err, &e)
}
