package dto

import (
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// CreateCounterpartyRequest defines the data needed to create a customer or supplier.
type CreateCounterpartyRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	TaxNumber string `json:"taxNumber"`
}

// UpdateCounterpartyRequest defines the data allowed for updating a counterparty.
type UpdateCounterpartyRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	TaxNumber *string `json:"taxNumber"`
	IsActive  *bool   `json:"isActive"`
}

// CounterpartyResponse defines the data returned for a counterparty.
type CounterpartyResponse struct {
	CounterpartyID string                  `json:"counterpartyID"`
	Kind           domain.CounterpartyKind `json:"kind"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone"`
	Address        string                  `json:"address"`
	TaxNumber      string                  `json:"taxNumber"`
	IsActive       bool                    `json:"isActive"`
	CreatedAt      time.Time               `json:"createdAt"`
	LastUpdatedAt  time.Time               `json:"lastUpdatedAt"`
}

// ToCounterpartyResponse converts a domain.Counterparty to its response DTO.
func ToCounterpartyResponse(cp *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		Kind:           cp.Kind,
		Name:           cp.Name,
		Email:          cp.Email,
		Phone:          cp.Phone,
		Address:        cp.Address,
		TaxNumber:      cp.TaxNumber,
		IsActive:       cp.IsActive,
		CreatedAt:      cp.CreatedAt,
		LastUpdatedAt:  cp.LastUpdatedAt,
	}
}

// ListCounterpartiesParams defines query parameters for listing counterparties.
type ListCounterpartiesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCounterpartiesResponse wraps the list of counterparties.
type ListCounterpartiesResponse struct {
	Counterparties []CounterpartyResponse `json:"counterparties"`
}
