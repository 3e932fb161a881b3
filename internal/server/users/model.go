// Package users implements the credential store and the registration/login
// service built on top of it.
package users

import "time"

// User is a persisted account record. PasswordHash never leaves this package
// in API responses; handlers project it away before serialization.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
