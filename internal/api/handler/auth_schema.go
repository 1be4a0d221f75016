package handler

import "time"

const birthDateLayout = "2006-01-02"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// loginRequest selects the national-id path when national_id (or its cpf
// alias) is present. Otherwise email and password are both required.
type loginRequest struct {
	Email      string `json:"email"       validate:"required_without=NationalID"`
	Password   string `json:"password"    validate:"required_without=NationalID"`
	NationalID string `json:"national_id"`
	CPF        string `json:"cpf"`
}

func (r *loginRequest) normalize() {
	if r.NationalID == "" {
		r.NationalID = r.CPF
	}
}

type createEmployeeRequest struct {
	Name       string `json:"name"        validate:"required"`
	Surname    string `json:"surname"     validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required"`
	Role       string `json:"role"        validate:"required"`
	NationalID string `json:"national_id" validate:"required"`
	BirthDate  string `json:"birth_date"  validate:"required,datetime=2006-01-02"`
}

type createCustomerRequest struct {
	NationalID string `json:"national_id" validate:"required"`
	Name       string `json:"name"        validate:"required"`
	Surname    string `json:"surname"     validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	BirthDate  string `json:"birth_date"  validate:"required,datetime=2006-01-02"`
}

type createUserRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required"`
	NationalID string `json:"national_id"`
}

// --- Response types ---

type tokenResponse struct {
	Token string `json:"token"`
}

type identityResponse struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name,omitempty"`
	Surname    string    `json:"surname,omitempty"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	NationalID string    `json:"national_id,omitempty"`
	BirthDate  string    `json:"birth_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type meResponse struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}
