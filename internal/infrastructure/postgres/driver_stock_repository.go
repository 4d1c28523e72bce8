package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

var _ repository.DriverStockRepository = (*DriverStockRepo)(nil)

// DriverStockRepo mantiene el contador materializado de stock restante por
// (conductor, producto) sobre PostgreSQL. Usable con pool o tx; las mutaciones
// del ledger siempre lo usan vía tx con la fila bloqueada.
type DriverStockRepo struct {
	q Querier
}

// NewDriverStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDriverStockRepository(q Querier) *DriverStockRepo {
	return &DriverStockRepo{q: q}
}

// Get obtiene el stock restante de un producto en poder de un conductor.
// Si no hay fila aún, devuelve un registro en cero (el par nunca tuvo eventos).
func (r *DriverStockRepo) Get(driverID, productID string) (*entity.DriverStock, error) {
	query := `
		SELECT driver_id, product_id, quantity, updated_at
		FROM driver_stock WHERE driver_id = $1 AND product_id = $2`
	return r.scan(r.q.QueryRow(context.Background(), query, driverID, productID), driverID, productID, "get driver stock")
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Serializa
// el ciclo leer-validar-escribir por (conductor, producto); usar solo en tx.
func (r *DriverStockRepo) GetForUpdate(driverID, productID string) (*entity.DriverStock, error) {
	query := `
		SELECT driver_id, product_id, quantity, updated_at
		FROM driver_stock WHERE driver_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scan(r.q.QueryRow(context.Background(), query, driverID, productID), driverID, productID, "get driver stock for update")
}

// Upsert escribe la cantidad absoluta del par. Solo para débitos sobre una fila
// ya leída con GetForUpdate; para créditos usar AddQuantity.
func (r *DriverStockRepo) Upsert(stock *entity.DriverStock) error {
	query := `
		INSERT INTO driver_stock (driver_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (driver_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.DriverID, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert driver stock: %w", err)
	}
	return nil
}

// AddQuantity suma delta al par, creando la fila si no existe. La suma ocurre en
// la base (quantity = quantity + delta), no sobre un valor leído: un par nuevo
// no tiene fila que SELECT FOR UPDATE pueda bloquear, y dos créditos
// concurrentes con cantidad absoluta se pisarían entre sí.
func (r *DriverStockRepo) AddQuantity(driverID, productID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO driver_stock (driver_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (driver_id, product_id)
		DO UPDATE SET quantity = driver_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, driverID, productID, delta)
	if err != nil {
		return fmt.Errorf("add driver stock quantity: %w", err)
	}
	return nil
}

func (r *DriverStockRepo) scan(row pgx.Row, driverID, productID, op string) (*entity.DriverStock, error) {
	var s entity.DriverStock
	err := row.Scan(&s.DriverID, &s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.DriverStock{DriverID: driverID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
