package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linuxmatters/emoset/internal/features"
	"github.com/xuri/excelize/v2"
)

// TablePath returns the CSV path of a table kind inside dir
func TablePath(dir string, kind features.TableKind) string {
	return filepath.Join(dir, string(kind)+".csv")
}

// WriteTables writes one CSV file per table kind into dir and returns their paths
func WriteTables(ds *Dataset, dir string, kinds []features.TableKind) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		path := TablePath(dir, kind)
		if err := writeTable(ds, path, kind); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTable(ds *Dataset, path string, kind features.TableKind) (err error) {
	lines, err := ds.Render(kind)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close table %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write table %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write table %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table %s: %w", path, err)
	}
	return nil
}

// WriteWorkbook writes every table kind as a sheet of one .xlsx workbook.
// Cells hold the same text as the CSV fields.
func WriteWorkbook(ds *Dataset, path string, kinds []features.TableKind) (err error) {
	if len(kinds) == 0 {
		return fmt.Errorf("no tables to write to %s", path)
	}

	wb := excelize.NewFile()
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	defaultSheet := wb.GetSheetName(0)
	for _, kind := range kinds {
		rows, err := ds.Table(kind)
		if err != nil {
			return err
		}

		sheet := string(kind)
		if _, err := wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}
		sw, err := wb.NewStreamWriter(sheet)
		if err != nil {
			return fmt.Errorf("failed to open sheet %s: %w", sheet, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := sw.SetRow(cell, values); err != nil {
				return fmt.Errorf("failed to write sheet %s row %d: %w", sheet, i+1, err)
			}
		}
		if err := sw.Flush(); err != nil {
			return fmt.Errorf("failed to flush sheet %s: %w", sheet, err)
		}
	}

	if err := wb.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	wb.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
