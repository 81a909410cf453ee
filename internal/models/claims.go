package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload issued on successful sign-in.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
