package ledger

import (
	"context"

	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
// Todo lo que se haga con ellos dentro de TxRunner.Run se confirma o revierte junto.
type TxRepos struct {
	Products    repository.ProductRepository
	DriverStock repository.DriverStockRepository
	Assignments repository.AssignmentRepository
	Transfers   repository.StockTransferRepository
	Sales       repository.SaleRepository
	Orders      repository.OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil,
// Rollback en caso contrario. La implementación debe mapear fallas de
// serialización/deadlock a domain.ErrConcurrencyConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
