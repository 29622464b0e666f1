package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

func TestParseProductRecords(t *testing.T) {
	records := [][]string{
		{"id_producto", "Titulo", "marca", "normal_price", "low_price", "high_price", "oferta", "sin_stock", "ahorro", "ahorro_percent", "extra"},
		{"1", "Arroz grado 1", "Tucapel", "1290.50", "", "1500", "si", "0", "200", "0.13", "x"},
		{"2", "Sal", "", "no-price", "$350", "", "false", "true", "", "", ""},
		{"abc", "Fila rota", "", "", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"4.0", "Desde planilla", "Chef"},
	}

	products, err := ParseProductRecords(records)
	require.NoError(t, err)
	require.Len(t, products, 3)

	arroz := products[0]
	assert.Equal(t, int64(1), arroz.ID)
	assert.Equal(t, "Arroz grado 1", arroz.Title)
	assert.Equal(t, "Tucapel", arroz.BrandName())
	assert.True(t, arroz.NormalPrice.Decimal.Equal(decimal.RequireFromString("1290.5")))
	assert.False(t, arroz.LowPrice.Valid)
	assert.True(t, arroz.HighPrice.Valid)
	assert.True(t, arroz.OnSale)
	assert.False(t, arroz.OutOfStock)
	assert.Equal(t, 200.0, domain.DecimalOrZero(arroz.Savings))
	assert.Equal(t, 0.13, domain.DecimalOrZero(arroz.SavingsPercent))

	sal := products[1]
	assert.Nil(t, sal.Brand)
	assert.False(t, sal.NormalPrice.Valid, "unparsable prices are absent")
	assert.Equal(t, 350.0, domain.DecimalOrZero(sal.LowPrice))
	assert.True(t, sal.OutOfStock)

	short := products[2]
	assert.Equal(t, int64(4), short.ID)
	assert.Equal(t, "Chef", short.BrandName())
	assert.False(t, short.NormalPrice.Valid)
}

func TestParseProductRecordsErrors(t *testing.T) {
	products, err := ParseProductRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = ParseProductRecords([][]string{{"title", "brand"}, {"Arroz", "Tucapel"}})
	assert.ErrorIs(t, err, ErrMissingIDColumn)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "si", "Sí", "yes", "t"} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "n"} {
		assert.False(t, parseBool(v), v)
	}
}

func TestFormatFromName(t *testing.T) {
	assert.Equal(t, FormatXLSX, FormatFromName("Productos.XLSX"))
	assert.Equal(t, FormatXLSX, FormatFromName("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.Equal(t, FormatCSV, FormatFromName("productos.csv"))
	assert.Equal(t, FormatCSV, FormatFromName("text/csv"))
}

func TestFileProductRepositoryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.csv")
	content := strings.Join([]string{
		"\ufeffid_producto,title,brand,normal_price,oferta,sin_stock",
		`10,"Aceite, maravilla",Chef,2490,1,0`,
		"11,Harina,,,,1",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	products, err := NewFileProductRepository(path).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Aceite, maravilla", products[0].Title)
	assert.True(t, products[0].OnSale)
	assert.True(t, products[1].OutOfStock)
	assert.Nil(t, products[1].Brand)
}

func TestFileProductRepositoryXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id_producto", "title", "brand", "normal_price", "sin_stock"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{20, "Leche entera", "Colun", 990, "0"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{21, "Yogurt", "", "", "1"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	products, err := NewFileProductRepository(path).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(20), products[0].ID)
	assert.Equal(t, "Colun", products[0].BrandName())
	assert.Equal(t, 990.0, domain.DecimalOrZero(products[0].NormalPrice))
	assert.True(t, products[1].OutOfStock)
}

func TestFileProductRepositoryMissingFile(t *testing.T) {
	_, err := NewFileProductRepository(filepath.Join(t.TempDir(), "nope.csv")).ListProducts(context.Background())
	assert.Error(t, err)
}

func TestStaticProductRepository(t *testing.T) {
	catalog := []*domain.Product{{ID: 1}, {ID: 2}}
	repo := NewStaticProductRepository(catalog)

	got, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.ListProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
