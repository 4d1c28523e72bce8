package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appledger "github.com/jhoicas/rutastock-api/internal/application/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// LoadSheetGenerator genera el documento imprimible de la hoja de carga.
type LoadSheetGenerator interface {
	GenerateLoadSheet(ctx context.Context, driver *entity.Driver, lines []domledger.DriverInventoryLine, generatedAt time.Time) ([]byte, error)
}

// LoadSheetUseCase produce la hoja de carga de un conductor: su inventario
// derivado (asignado/vendido/restante) con marcas de alerta, listo para imprimir
// antes de salir a ruta.
type LoadSheetUseCase struct {
	driverRepo repository.DriverRepository
	ledgerUC   *appledger.LedgerUseCase
	generator  LoadSheetGenerator
}

// NewLoadSheetUseCase construye el caso de uso.
func NewLoadSheetUseCase(driverRepo repository.DriverRepository, ledgerUC *appledger.LedgerUseCase, generator LoadSheetGenerator) *LoadSheetUseCase {
	return &LoadSheetUseCase{driverRepo: driverRepo, ledgerUC: ledgerUC, generator: generator}
}

// GenerateForDriver devuelve los bytes del PDF de la hoja de carga.
func (uc *LoadSheetUseCase) GenerateForDriver(ctx context.Context, driverID string, threshold decimal.Decimal) ([]byte, error) {
	driver, err := uc.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.ledgerUC.GetDriverInventoryWithAlerts(ctx, driverID, threshold)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateLoadSheet(ctx, driver, lines, time.Now())
}
