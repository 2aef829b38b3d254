package inventory

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ExportFileName nombre sugerido del archivo exportado.
const ExportFileName = "inventaris.csv"

var exportHeader = []string{"Kode", "Nama", "Kategori", "Jumlah", "Unit", "Titik Pemesanan Ulang"}

// CSVExportUseCase exporta la vista de inventario filtrada.
type CSVExportUseCase struct {
	projection *ProjectionUseCase
}

// NewCSVExportUseCase construye el caso de uso.
func NewCSVExportUseCase(projection *ProjectionUseCase) *CSVExportUseCase {
	return &CSVExportUseCase{projection: projection}
}

// Export escribe el CSV en w. Devuelve el número de filas de datos escritas.
func (uc *CSVExportUseCase) Export(ctx context.Context, w io.Writer, q inventory.ProjectionQuery) (int, error) {
	rows, _, err := uc.projection.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	rows = inventory.ApplyQuery(rows, q)
	return len(rows), WriteInventoryCSV(w, rows)
}

// WriteInventoryCSV serializa filas proyectadas con encabezados legibles.
func WriteInventoryCSV(w io.Writer, rows []inventory.ProjectedItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rp := ""
		if r.ReorderPoint != nil {
			rp = strconv.Itoa(*r.ReorderPoint)
		}
		if err := cw.Write([]string{r.Code, r.Name, r.Category, strconv.Itoa(r.Quantity), r.Unit, rp}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
