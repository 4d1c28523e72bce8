package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo persiste eventos de asignación sobre PostgreSQL (append-only).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create agrega un evento de asignación. Los eventos nunca se editan ni borran.
func (r *AssignmentRepo) Create(assignment *entity.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO assignments (id, driver_id, product_id, quantity, assigned_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if assignment.CreatedBy != "" {
		createdBy = &assignment.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.DriverID, assignment.ProductID,
		assignment.Quantity, assignment.AssignedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// ListByDriver lista las asignaciones históricas de un conductor.
func (r *AssignmentRepo) ListByDriver(driverID string, limit, offset int) ([]*entity.Assignment, error) {
	query := `
		SELECT id, driver_id, product_id, quantity, assigned_at, created_by
		FROM assignments WHERE driver_id = $1
		ORDER BY assigned_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		var createdBy *string
		if err := rows.Scan(&a.ID, &a.DriverID, &a.ProductID, &a.Quantity, &a.AssignedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		if createdBy != nil {
			a.CreatedBy = *createdBy
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
