package model

import "time"

// AccountModel mirrors the 'auth_users' table. Email and sub each carry a unique index.
type AccountModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_auth_users_email"`
	PasswordDigest string    `gorm:"type:varchar(255);not null"`
	SubjectID      string    `gorm:"column:sub;type:varchar(64);not null;uniqueIndex:idx_auth_users_sub"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "auth_users"
}
