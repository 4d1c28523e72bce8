package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persiste eventos de venta sobre PostgreSQL (append-only).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create agrega un evento de venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, driver_id, product_id, quantity, order_id, sold_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if sale.CreatedBy != "" {
		createdBy = &sale.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.DriverID, sale.ProductID, sale.Quantity,
		sale.OrderID, sale.SoldAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// ListByDriver lista las ventas históricas de un conductor.
func (r *SaleRepo) ListByDriver(driverID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, driver_id, product_id, quantity, order_id, sold_at, created_by
		FROM sales WHERE driver_id = $1
		ORDER BY sold_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.DriverID, &s.ProductID, &s.Quantity, &s.OrderID, &s.SoldAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
