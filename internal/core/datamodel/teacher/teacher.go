package teacher

import "time"

type Teacher struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        *int64     `gorm:"column:user_id;index"`
	EmployeeNo    string     `gorm:"column:employee_no;uniqueIndex;not null"`
	FirstName     string     `gorm:"column:first_name;not null"`
	LastName      string     `gorm:"column:last_name;not null"`
	Email         *string    `gorm:"column:email"`
	Phone         *string    `gorm:"column:phone"`
	Qualification *string    `gorm:"column:qualification"`
	Subjects      *string    `gorm:"column:subjects"`
	HiredAt       *time.Time `gorm:"column:hired_at"`
	Status        string     `gorm:"column:status;not null;default:active"`
	CreatedAt     time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Teacher) TableName() string {
	return "teachers"
}
