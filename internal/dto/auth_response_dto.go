package dto

import "time"

// LoginResponse returns the access token and user details after login.
// The refresh token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	Token       string       `json:"token"`
	TokenExpiry time.Time    `json:"tokenExpiry"`
	User        UserResponse `json:"user"`
}
