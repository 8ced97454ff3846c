package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	file *excelize.File
}

func openXLSX(path string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &xlsxSource{file: f}, nil
}

func (s *xlsxSource) sheetNames() []string {
	return s.file.GetSheetList()
}

// rows reads raw cell values so numbers arrive unformatted ("12500" not "12,500")
func (s *xlsxSource) rows(sheet string) ([][]string, error) {
	return s.file.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func (s *xlsxSource) close() error {
	return s.file.Close()
}
