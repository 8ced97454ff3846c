//go:build ignore

// verify_excel re-adds the band rows of every band sheet in a summary
// workbook and compares them with the Total row.
//
//	go run scripts/verify_excel.go output/survey-recon-report.xlsx
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var fixedSheets = map[string]bool{"Overview": true, "Indicators": true, "Ropes": true, "Warnings": true}

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

	mismatches := 0
	for _, sheet := range f.GetSheetList() {
		if fixedSheets[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			log.Fatal(err)
		}

		// Row 3 is the header, band rows run until the Total row
		if len(rows) < 4 {
			fmt.Printf("%s: no band rows\n", sheet)
			continue
		}
		quarters := 0
		for _, h := range rows[2][1:] {
			if h == "" {
				break
			}
			quarters++
		}

		sums := make([]float64, quarters)
		for _, row := range rows[3:] {
			if len(row) == 0 {
				continue
			}
			if row[0] == "Total" {
				for q := 0; q < quarters && q+1 < len(row); q++ {
					total, _ := strconv.ParseFloat(row[q+1], 64)
					if total != sums[q] {
						fmt.Printf("❌ %s %s: total %v, bands add up to %v\n", sheet, rows[2][q+1], total, sums[q])
						mismatches++
					}
				}
				break
			}
			for q := 0; q < quarters && q+1 < len(row); q++ {
				if v, err := strconv.ParseFloat(row[q+1], 64); err == nil {
					sums[q] += v
				}
			}
		}
		fmt.Printf("%s: %d quarters checked\n", sheet, quarters)
	}

	if mismatches > 0 {
		fmt.Printf("\n❌ FAILED: %d totals do not match\n", mismatches)
		os.Exit(1)
	}
	fmt.Println("\n✅ All band totals match")
}
