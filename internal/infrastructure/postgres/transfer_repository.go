package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo persiste eventos de traslado sobre PostgreSQL (append-only).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create agrega un evento de traslado. to_driver_id NULL = retorno a bodega central.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transfers (id, from_driver_id, to_driver_id, product_id, quantity, transfer_type, transferred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if transfer.CreatedBy != "" {
		createdBy = &transfer.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.FromDriverID, transfer.ToDriverID, transfer.ProductID,
		transfer.Quantity, transfer.TransferType, transfer.TransferredAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock transfer: %w", err)
	}
	return nil
}

// ListByDriver lista traslados donde el conductor es origen o destino.
func (r *StockTransferRepo) ListByDriver(driverID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, from_driver_id, to_driver_id, product_id, quantity, transfer_type, transferred_at, created_by
		FROM stock_transfers
		WHERE from_driver_id = $1 OR to_driver_id = $1
		ORDER BY transferred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		var createdBy *string
		if err := rows.Scan(&t.ID, &t.FromDriverID, &t.ToDriverID, &t.ProductID, &t.Quantity, &t.TransferType, &t.TransferredAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
