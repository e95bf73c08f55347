package entity

import "time"

// Patient is the identity record created at sign-up.
type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Surname   string    `gorm:"type:varchar(255);not null" json:"surname"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Birthdate string    `gorm:"type:varchar(10)" json:"birthdate"`
	City      string    `gorm:"type:varchar(255)" json:"city"`
	Role      string    `gorm:"type:varchar(20);not null;default:user" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) IsAdmin() bool {
	return p != nil && IsAdminRole(p.Role)
}

// FullName joins name and surname for display.
func (p *Patient) FullName() string {
	switch {
	case p.Surname == "":
		return p.Name
	case p.Name == "":
		return p.Surname
	}
	return p.Name + " " + p.Surname
}
