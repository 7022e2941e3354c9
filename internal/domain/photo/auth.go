package photo

import "crypto/subtle"

// CheckPassword compares a submitted password with the configured secret in
// constant time. An empty secret never matches.
func CheckPassword(secret, submitted string) error {
	if secret == "" {
		return ErrInvalidPassword
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(submitted)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
