package stock_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/stock"
)

var lima = mustLocation("America/Lima")

// today mediodía para que el reloj no influya en el conteo de días.
var today = time.Date(2026, 10, 18, 12, 30, 0, 0, lima)

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func daysFromToday(n int) *time.Time {
	t := time.Date(2026, 10, 18, 0, 0, 0, 0, lima).AddDate(0, 0, n)
	return &t
}

func lot(code string, units int64, purchase, sale float64, expiry *time.Time) entity.Lot {
	return entity.Lot{
		ProductCode:   code,
		Name:          "Producto " + code,
		Units:         units,
		PurchasePrice: decimal.NewFromFloat(purchase),
		SalePrice:     decimal.NewFromFloat(sale),
		ExpiryDate:    expiry,
	}
}

func TestBuildSummaries_EjemploDosLotes(t *testing.T) {
	lots := []entity.Lot{
		lot("A", 10, 2, 5, nil),
		lot("A", 5, 3, 5, daysFromToday(10)),
	}

	out := stock.BuildSummaries(lots, today)
	require.Len(t, out, 1)
	s := out[0]

	assert.Equal(t, "A", s.ProductCode)
	assert.Equal(t, int64(15), s.TotalUnits)
	assert.True(t, s.TotalCost.Equal(decimal.NewFromInt(35)), "10*2 + 5*3 = 35, got %s", s.TotalCost)
	assert.Equal(t, "2.33", s.AvgUnitCost.StringFixed(2))
	assert.Equal(t, int64(5), s.UnitsAtRisk)
	assert.Equal(t, int64(10), s.UnitsCurrent)
	assert.Equal(t, int64(0), s.UnitsExpired)
	assert.Equal(t, 2, s.LotCount)
	require.NotNil(t, s.MinDaysToExpiry)
	assert.Equal(t, 10, *s.MinDaysToExpiry)
	assert.True(t, s.TheoreticalSaleValue.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "33.33", s.PctAtRisk.StringFixed(2))
	assert.Equal(t, "2.67", s.UnitMargin.StringFixed(2))
	assert.Equal(t, "114.29", s.MarginPct.StringFixed(2))
	assert.False(t, s.SalePriceVaries)
}

func TestBuildSummaries_ListaVacia(t *testing.T) {
	out := stock.BuildSummaries(nil, today)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBuildSummaries_LimitesDeVencimiento(t *testing.T) {
	cases := []struct {
		name    string
		days    int
		expired int64
		atRisk  int64
		current int64
	}{
		{"vence hoy cuenta como vencido", 0, 7, 0, 0},
		{"vencido ayer", -1, 7, 0, 0},
		{"mañana en riesgo", 1, 0, 7, 0},
		{"30 días en riesgo", 30, 0, 7, 0},
		{"31 días vigente", 31, 0, 0, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := stock.BuildSummaries([]entity.Lot{lot("X", 7, 1, 2, daysFromToday(tc.days))}, today)
			require.Len(t, out, 1)
			assert.Equal(t, tc.expired, out[0].UnitsExpired)
			assert.Equal(t, tc.atRisk, out[0].UnitsAtRisk)
			assert.Equal(t, tc.current, out[0].UnitsCurrent)
			require.NotNil(t, out[0].MinDaysToExpiry)
			assert.Equal(t, tc.days, *out[0].MinDaysToExpiry)
		})
	}
}

func TestBuildSummaries_SinUnidadesNoDivideEntreCero(t *testing.T) {
	out := stock.BuildSummaries([]entity.Lot{lot("Z", 0, 0, 3, nil)}, today)
	require.Len(t, out, 1)

	assert.True(t, out[0].AvgUnitCost.IsZero())
	assert.True(t, out[0].MarginPct.IsZero())
	assert.True(t, out[0].PctAtRisk.IsZero())
	assert.Nil(t, out[0].MinDaysToExpiry)
}

func TestBuildSummaries_PrecioDeVentaDelPrimerLote(t *testing.T) {
	out := stock.BuildSummaries([]entity.Lot{
		lot("P", 1, 1, 4, nil),
		lot("P", 1, 1, 6, nil),
	}, today)
	require.Len(t, out, 1)

	assert.True(t, out[0].SalePrice.Equal(decimal.NewFromInt(4)))
	assert.True(t, out[0].SalePriceVaries, "la diferencia de precios queda señalada")
}

func TestBuildSummaries_OrdenSegunIdioma(t *testing.T) {
	mk := func(code, name string) entity.Lot {
		l := lot(code, 1, 1, 1, nil)
		l.Name = name
		return l
	}
	out := stock.BuildSummaries([]entity.Lot{
		mk("1", "Bromuro"),
		mk("2", "Ácido fólico"),
		mk("3", "amoxicilina"),
		mk("4", "Zinc"),
	}, today)

	names := make([]string, len(out))
	for i, s := range out {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Ácido fólico", "amoxicilina", "Bromuro", "Zinc"}, names)
}

func TestAggregator_VentanaConfigurable(t *testing.T) {
	agg := stock.NewAggregator(60, language.Spanish)
	out := agg.Summarize([]entity.Lot{lot("V", 3, 1, 1, daysFromToday(45))}, today)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].UnitsAtRisk)
	assert.Equal(t, 60, agg.RiskWindowDays)
	assert.Equal(t, stock.DefaultRiskWindowDays, stock.NewAggregator(0, language.Spanish).RiskWindowDays)
}

// Propiedades sobre entradas aleatorias: ninguna unidad se pierde ni se cuenta dos veces.
func TestBuildSummaries_InvariantesAleatorios(t *testing.T) {
	f := gofakeit.New(42)
	codes := []string{"7750001", "7750002", "7750003", "7750004", "7750005"}

	for round := 0; round < 200; round++ {
		n := f.IntRange(0, 40)
		lots := make([]entity.Lot, 0, n)
		var totalIn int64
		for i := 0; i < n; i++ {
			var exp *time.Time
			if f.Bool() {
				exp = daysFromToday(f.IntRange(-90, 120))
			}
			l := lot(f.RandomString(codes), int64(f.IntRange(0, 500)),
				f.Float64Range(0, 50), f.Float64Range(0, 80), exp)
			totalIn += l.Units
			lots = append(lots, l)
		}

		out := stock.BuildSummaries(lots, today)

		var totalOut int64
		seen := map[string]bool{}
		for _, s := range out {
			require.False(t, seen[s.ProductCode], "un resumen por código")
			seen[s.ProductCode] = true
			require.Equal(t, s.TotalUnits, s.UnitsExpired+s.UnitsAtRisk+s.UnitsCurrent)
			require.GreaterOrEqual(t, s.UnitsCurrent, int64(0))
			totalOut += s.TotalUnits
		}
		require.Equal(t, totalIn, totalOut)
	}
}
