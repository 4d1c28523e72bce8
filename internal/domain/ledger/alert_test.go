package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rutastock-api/internal/domain/ledger"
)

// ClassifyRemaining: critical si remaining <= 0, warning si 0 < remaining <= umbral,
// normal por encima. Umbral no positivo cae al valor por defecto.
func TestClassifyRemaining(t *testing.T) {
	cases := []struct {
		name      string
		remaining int64
		threshold int64
		want      string
	}{
		{"sin stock es critical", 0, 5, ledger.AlertCritical},
		{"negativo es critical", -1, 5, ledger.AlertCritical},
		{"igual al umbral es warning", 5, 5, ledger.AlertWarning},
		{"debajo del umbral es warning", 1, 5, ledger.AlertWarning},
		{"encima del umbral es normal", 6, 5, ledger.AlertNormal},
		{"umbral personalizado", 9, 10, ledger.AlertWarning},
		{"umbral cero usa el default", 5, 0, ledger.AlertWarning},
		{"umbral negativo usa el default", 6, -3, ledger.AlertNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.ClassifyRemaining(decimal.NewFromInt(tc.remaining), decimal.NewFromInt(tc.threshold))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyRemaining_Fraccional(t *testing.T) {
	// Cantidades fraccionales (kg, litros) se clasifican igual que las enteras.
	got := ledger.ClassifyRemaining(decimal.RequireFromString("0.5"), decimal.NewFromInt(5))
	assert.Equal(t, ledger.AlertWarning, got)

	got = ledger.ClassifyRemaining(decimal.RequireFromString("5.01"), decimal.NewFromInt(5))
	assert.Equal(t, ledger.AlertNormal, got)
}
