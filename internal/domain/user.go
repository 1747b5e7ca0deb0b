package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"type:enum('user','admin');default:'user'"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
