//go:build ignore

// verify_empty_cells checks that no value cell in a summary workbook is
// blank: missing survey values must be written as "-".
//
//	go run scripts/verify_empty_cells.go output/survey-recon-report.xlsx
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	filename := "output/survey-recon-report.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	emptyCount := 0
	for _, sheet := range f.GetSheetList() {
		if sheet == "Overview" || sheet == "Ropes" {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Fatal(err)
		}

		width := 0
		for i, row := range rows {
			// a header row sets the width of the block below it
			if i+1 < len(rows) && len(row) > 1 && isHeader(f, sheet, i+1) {
				width = len(row)
				continue
			}
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" || width == 0 {
				continue
			}
			for c := 1; c < width; c++ {
				// the spacer column between counts and shares
				if header, _ := f.GetCellValue(sheet, cellName(c+1, headerRow(f, sheet, i+1))); header == "" {
					continue
				}
				if c >= len(row) || strings.TrimSpace(row[c]) == "" {
					fmt.Printf("❌ %s!%s is empty (row label %q)\n", sheet, cellName(c+1, i+1), row[0])
					emptyCount++
				}
			}
		}
	}

	if emptyCount > 0 {
		fmt.Printf("\n❌ FAILED: %d empty value cells\n", emptyCount)
		os.Exit(1)
	}
	fmt.Println("✅ PASSED: every value cell is filled")
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// isHeader reports whether a row carries the header fill
func isHeader(f *excelize.File, sheet string, row int) bool {
	id, err := f.GetCellStyle(sheet, cellName(1, row))
	if err != nil {
		return false
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	return len(style.Fill.Color) > 0 && strings.Contains(strings.ToUpper(style.Fill.Color[0]), "E0E0E0")
}

// headerRow finds the nearest header row above row
func headerRow(f *excelize.File, sheet string, row int) int {
	for r := row - 1; r > 0; r-- {
		if isHeader(f, sheet, r) {
			return r
		}
	}
	return 1
}
