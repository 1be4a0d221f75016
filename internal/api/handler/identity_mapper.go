package handler

import (
	"fmt"
	"time"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
)

// --- Request → Service input ---

func toStaffInput(req createEmployeeRequest) (ports.RegisterStaffInput, error) {
	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return ports.RegisterStaffInput{}, err
	}
	return ports.RegisterStaffInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		NationalID: req.NationalID,
		BirthDate:  birth,
	}, nil
}

func toCustomerInput(req createCustomerRequest) (ports.RegisterCustomerInput, error) {
	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return ports.RegisterCustomerInput{}, err
	}
	return ports.RegisterCustomerInput{
		NationalID: req.NationalID,
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		BirthDate:  birth,
	}, nil
}

func parseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return t, nil
}

// --- Domain → Response ---

func toIdentityResponse(i *domain.Identity) identityResponse {
	resp := identityResponse{
		ID:         i.ID,
		Kind:       string(i.Kind),
		Name:       i.Name,
		Surname:    i.Surname,
		Email:      i.Email,
		Role:       string(i.Role),
		NationalID: i.NationalID,
		CreatedAt:  i.CreatedAt,
	}
	if !i.BirthDate.IsZero() {
		resp.BirthDate = i.BirthDate.Format(birthDateLayout)
	}
	return resp
}
