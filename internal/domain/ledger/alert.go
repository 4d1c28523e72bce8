package ledger

import "github.com/shopspring/decimal"

// Niveles de alerta de stock restante.
const (
	AlertNormal   = "normal"
	AlertWarning  = "warning"  // stock bajo
	AlertCritical = "critical" // sin stock
)

// DefaultAlertThreshold es el umbral de stock bajo cuando el caller no indica uno.
const DefaultAlertThreshold = 5

// ClassifyRemaining clasifica el stock restante contra un umbral (servicio de dominio):
// critical si remaining <= 0; warning si 0 < remaining <= threshold; normal en otro caso.
// Un umbral no positivo cae al valor por defecto.
func ClassifyRemaining(remaining decimal.Decimal, threshold decimal.Decimal) string {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = decimal.NewFromInt(DefaultAlertThreshold)
	}
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return AlertCritical
	case remaining.LessThanOrEqual(threshold):
		return AlertWarning
	default:
		return AlertNormal
	}
}
