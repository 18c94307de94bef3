package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the attendance rows, matching the
// first sheet of the shared spreadsheet.
const DefaultSheet = "Sheet1"

// headerRow mirrors the header the shared sheet carries. Readers skip it
// naturally: its first cell is not a timestamp.
var headerRow = []string{"날짜시간", "이름", "구분", "위치", "거리"}

// Workbook is an XLSX-backed record store for deployments where the
// spreadsheet file stays the system of record. Appends rewrite the file in
// place; there is no conditional append, so same-day duplicates from
// racing writers are possible and tolerated read-side.
type Workbook struct {
	mu    sync.Mutex
	path  string
	sheet string
	f     *excelize.File
}

// OpenWorkbook opens the workbook at path, creating it with a header row
// when it does not exist. An empty sheet name selects DefaultSheet.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if sheet != DefaultSheet {
			if _, err := f.NewSheet(sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}
		if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SaveAs(path); err != nil {
			f.Close()
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
		return &Workbook{path: path, sheet: sheet, f: f}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}
	return &Workbook{path: path, sheet: sheet, f: f}, nil
}

// ReadAll returns every row of the sheet, header included, in sheet order.
// excelize already trims trailing empty cells per row, so rows come back
// ragged exactly like the adapter contract expects.
func (w *Workbook) ReadAll(ctx context.Context) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", w.sheet, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// Append writes the row under the last occupied row and saves the file.
func (w *Workbook) Append(ctx context.Context, cells []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", w.sheet, err)
	}
	axis, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("append row %d: %w", len(rows)+1, err)
	}
	if err := w.f.SetSheetRow(w.sheet, axis, &cells); err != nil {
		return fmt.Errorf("append row at %s: %w", axis, err)
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
