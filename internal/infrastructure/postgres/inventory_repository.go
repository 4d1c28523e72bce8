package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/rutastock-api/internal/domain/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.InventoryQueryRepository = (*InventoryQueryRepo)(nil)

// InventoryQueryRepo calcula las líneas derivadas de inventario agregando el log
// de eventos en SQL. Lectura pura: refleja todo lo confirmado al momento de la
// llamada y no tiene efectos.
type InventoryQueryRepo struct {
	q Querier
}

// NewInventoryQueryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryQueryRepository(q Querier) *InventoryQueryRepo {
	return &InventoryQueryRepo{q: q}
}

// LinesByDriver devuelve una línea por cada producto que el conductor tocó
// (asignación o traslado entrante/saliente):
//
//	assigned  = asignaciones + traslados entrantes - traslados salientes
//	sold      = ventas
//	remaining = assigned - sold
//
// AlertLevel lo clasifica el caso de uso contra el umbral del caller.
func (r *InventoryQueryRepo) LinesByDriver(driverID string) ([]ledger.DriverInventoryLine, error) {
	query := `
		WITH assigned AS (
			SELECT product_id, SUM(quantity) AS qty
			FROM assignments WHERE driver_id = $1 GROUP BY product_id
		), incoming AS (
			SELECT product_id, SUM(quantity) AS qty
			FROM stock_transfers WHERE to_driver_id = $1 GROUP BY product_id
		), outgoing AS (
			SELECT product_id, SUM(quantity) AS qty
			FROM stock_transfers WHERE from_driver_id = $1 GROUP BY product_id
		), sold AS (
			SELECT product_id, SUM(quantity) AS qty
			FROM sales WHERE driver_id = $1 GROUP BY product_id
		), touched AS (
			SELECT product_id FROM assigned
			UNION SELECT product_id FROM incoming
			UNION SELECT product_id FROM outgoing
		)
		SELECT p.id, p.sku, p.name,
			COALESCE(a.qty, 0) + COALESCE(i.qty, 0) - COALESCE(o.qty, 0) AS assigned,
			COALESCE(s.qty, 0) AS sold
		FROM touched t
		JOIN products p ON p.id = t.product_id
		LEFT JOIN assigned a ON a.product_id = t.product_id
		LEFT JOIN incoming i ON i.product_id = t.product_id
		LEFT JOIN outgoing o ON o.product_id = t.product_id
		LEFT JOIN sold s ON s.product_id = t.product_id
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, driverID)
	if err != nil {
		return nil, fmt.Errorf("inventory lines by driver: %w", err)
	}
	defer rows.Close()

	var lines []ledger.DriverInventoryLine
	for rows.Next() {
		var line ledger.DriverInventoryLine
		if err := rows.Scan(&line.ProductID, &line.SKU, &line.ProductName, &line.Assigned, &line.Sold); err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		line.Remaining = line.Assigned.Sub(line.Sold)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
