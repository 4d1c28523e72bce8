package entity

import "time"

// Driver representa un conductor de ruta. No tiene campo de inventario:
// su inventario se deriva de los eventos (asignaciones, traslados, ventas).
type Driver struct {
	ID           string
	Name         string
	Phone        string
	LinkedUserID *string // cuenta de usuario asociada, opcional
	Status       string  // active, archived
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el conductor puede participar en nuevos eventos de inventario.
func (d *Driver) IsActive() bool {
	return d != nil && d.Status == StatusActive
}
