package models

import "time"

type User struct {
	ID           string    `db:"id"`
	UserName     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
