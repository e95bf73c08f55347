package dto

import "time"

type PatientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Birthdate string    `json:"birthdate"`
	City      string    `json:"city"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Page     int               `json:"-"`
	Limit    int               `json:"-"`
	Total    int64             `json:"-"`
}

// UpdateProfileRequest lists the fields a patient may change on their own record
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"omitempty,max=255"`
	Surname   string `json:"surname" validate:"omitempty,max=255"`
	Birthdate string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	City      string `json:"city" validate:"omitempty,max=255"`
}

type AdminUpdatePatientRequest struct {
	Name      string `json:"name" validate:"omitempty,max=255"`
	Surname   string `json:"surname" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Birthdate string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	City      string `json:"city" validate:"omitempty,max=255"`
	Role      string `json:"role" validate:"omitempty,oneof=ADMIN user"`
}

// PatientLinksRequest names a relation field of the patient record and,
// for link and unlink, the target record ids.
type PatientLinksRequest struct {
	Field string  `json:"-" validate:"required,alphanum,max=64"`
	IDs   []int64 `json:"ids" validate:"omitempty,dive,gt=0"`
}
