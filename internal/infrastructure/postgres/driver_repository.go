package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación del puerto DriverRepository sobre PostgreSQL
// (usable con pool o tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

const driverColumns = `id, name, phone, linked_user_id, status, created_at, updated_at`

// Create persiste un conductor nuevo.
func (r *DriverRepo) Create(driver *entity.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.Name, driver.Phone, driver.LinkedUserID,
		driver.Status, driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

// GetByID obtiene un conductor por ID. Devuelve nil, nil si no existe.
func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	var d entity.Driver
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Phone, &d.LinkedUserID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// Update actualiza los datos de contacto de un conductor.
func (r *DriverRepo) Update(driver *entity.Driver) error {
	query := `
		UPDATE drivers
		SET name = $2, phone = $3, linked_user_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.Name, driver.Phone, driver.LinkedUserID, driver.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// List lista conductores no archivados con paginación.
func (r *DriverRepo) List(limit, offset int) ([]*entity.Driver, error) {
	query := `
		SELECT ` + driverColumns + ` FROM drivers
		WHERE status <> 'archived'
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LinkedUserID, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Archive marca el conductor como archivado (borrado lógico).
func (r *DriverRepo) Archive(id string) error {
	query := `UPDATE drivers SET status = 'archived', updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("archive driver: %w", err)
	}
	return nil
}
