package domain

import "database/sql"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Hash         string         `db:"password_hash" json:"-"`
	Role         string         `db:"role" json:"role"`
	ResetToken   sql.NullString `db:"reset_token" json:"-"`
	ResetExpires sql.NullInt64  `db:"reset_expires" json:"-"`
	CreatedAt    string         `db:"created_at" json:"createdAt"`
}
