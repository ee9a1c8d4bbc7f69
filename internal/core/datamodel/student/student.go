package student

import "time"

type Student struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        *int64     `gorm:"column:user_id;index"`
	AdmissionNo   string     `gorm:"column:admission_no;uniqueIndex;not null"`
	FirstName     string     `gorm:"column:first_name;not null"`
	LastName      string     `gorm:"column:last_name;not null"`
	DateOfBirth   *time.Time `gorm:"column:date_of_birth"`
	Gender        *string    `gorm:"column:gender"`
	ClassroomID   *int64     `gorm:"column:classroom_id;index"`
	GuardianName  *string    `gorm:"column:guardian_name"`
	GuardianPhone *string    `gorm:"column:guardian_phone"`
	Phone         *string    `gorm:"column:phone"`
	Address       *string    `gorm:"column:address"`
	Status        string     `gorm:"column:status;not null;default:active"`
	AdmittedAt    time.Time  `gorm:"column:admitted_at;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Student) TableName() string {
	return "students"
}
