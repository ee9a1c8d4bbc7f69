package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Username     *string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	Phone        *string    `gorm:"column:phone"`
	Role         string     `gorm:"column:role;not null;default:student"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	IsVerified   bool       `gorm:"column:is_verified;default:false"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Session is one logged-in device. The token identifier is opaque and
// embedded as a claim in both the access and refresh tokens; revocation
// checks go through this row, never through token content.
type Session struct {
	ID           string     `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null;index"`
	TokenID      string     `gorm:"column:token_id;uniqueIndex;not null"`
	UserAgent    *string    `gorm:"column:user_agent"`
	IPAddress    *string    `gorm:"column:ip_address"`
	DeviceType   *string    `gorm:"column:device_type"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	IssuedAt     time.Time  `gorm:"column:issued_at;not null"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null"`
	LastActivity time.Time  `gorm:"column:last_activity;not null"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
}

func (Session) TableName() string {
	return "user_sessions"
}
