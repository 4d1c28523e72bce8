package dto

import "time"

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	LinkedUserID *string `json:"linked_user_id,omitempty"`
}

// UpdateDriverRequest body para PUT /api/drivers/:id. Campos nil no se tocan.
type UpdateDriverRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LinkedUserID *string `json:"linked_user_id,omitempty"`
}

// DriverResponse respuesta de conductor.
type DriverResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	LinkedUserID *string   `json:"linked_user_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DriverListResponse listado paginado de conductores.
type DriverListResponse struct {
	Items []DriverResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
