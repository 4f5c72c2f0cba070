package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// User is an account that can create and edit articles. The password hash
// is never serialized into responses.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password" json:"-"`
}

// Claims defines the structure of the JWT claims.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}
