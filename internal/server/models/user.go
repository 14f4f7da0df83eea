package models

import "time"

// Membership packages recognised by the platform.
const (
	PackageFree    = "free"
	PackagePremium = "premium"
)

type User struct {
	ID              int64
	Name            string
	Email           string
	PasswordHash    string
	Package         string
	ProfileComplete bool
	PhotoKey        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
