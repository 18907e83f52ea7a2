package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	radiosSheet  = "Radios"
	devicesSheet = "Devices"
)

// WriteXLSX writes both tables to a single workbook, one sheet per table.
func WriteXLSX(path string, tables *Tables) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, radiosSheet, RadioHeaders, tables.Radios); err != nil {
		return err
	}
	if err := writeSheet(f, devicesSheet, DeviceHeaders, tables.Devices); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the radio table.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("writing header %s: %w", header, err)
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing row %d: %w", rowIdx+1, err)
			}
		}
	}

	return nil
}
