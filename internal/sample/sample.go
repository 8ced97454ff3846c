// Package sample writes a small survey workbook and ropes CSV that follow the
// default layout. They back the `sample` command and the test suites.
package sample

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

const (
	VSLASheet     = "VSLA Quarterly"
	ForestrySheet = "Forestry"
)

// Quarters are the header labels on row 3 of both sheets
var Quarters = []string{"Q1 2023", "Q2 2023", "Q3 2023", "Q4 2023"}

type block struct {
	title    string
	titleRow int
	firstRow int
	rows     []line
	total    bool
}

type line struct {
	label  string
	values []interface{}
}

var vslaBlocks = []block{
	{
		title: "Savings per member (TZS)", titleRow: 4, firstRow: 5, total: true,
		rows: []line{
			{"0 - 10,000", []interface{}{14, 12, 9, 7}},
			{"10,001 - 25,000", []interface{}{22, 20, 18, 15}},
			{"25,001 - 50,000", []interface{}{10, 13, 15, 17}},
			{"50,001 - 100,000", []interface{}{4, 5, 7, 9}},
			{"> 100,000", []interface{}{1, 2, 3, 4}},
		},
	},
	{
		title: "Loan size (TZS)", titleRow: 12, firstRow: 13, total: true,
		rows: []line{
			{"0 - 50,000", []interface{}{20, 18, 15, 12}},
			{"50,001 - 100,000", []interface{}{15, 16, 17, 18}},
			{"100,001 - 250,000", []interface{}{8, 10, 12, 13}},
			{"250,001 - 500,000", []interface{}{3, 4, 5, 6}},
			{"> 500,000", []interface{}{0, 1, 1, 2}},
		},
	},
	{
		title: "Members per group", titleRow: 20, firstRow: 21, total: true,
		rows: []line{
			{"< 15", []interface{}{6, 5, 5, 4}},
			{"15 - 19", []interface{}{18, 17, 16, 15}},
			{"20 - 24", []interface{}{17, 19, 20, 21}},
			{"25 - 30", []interface{}{8, 9, 9, 10}},
			{"> 30", []interface{}{2, 2, 2, 2}},
		},
	},
	{
		title: "VSLA indicators", titleRow: 28, firstRow: 29,
		rows: []line{
			{"Number of groups", []interface{}{51, 52, 52, 52}},
			{"Members (female)", []interface{}{812, 840, 851, 866}},
			{"Members (male)", []interface{}{301, 310, 322, 330}},
			{"Total savings (TZS)", []interface{}{38500000, 41200000, 45900000, 50300000}},
			{"Loans outstanding (TZS)", []interface{}{21000000, 23500000, "-", 27800000}},
			{"Social fund (TZS)", []interface{}{2100000, 2300000, 2450000, 2600000}},
			{"Groups meeting weekly", []interface{}{44, 47, 49, 50}},
		},
	},
}

var forestryBlock = block{
	title: "Forestry indicators", titleRow: 2, firstRow: 4,
	rows: []line{
		{"Hectares under community management", []interface{}{1250, 1250, 1310, 1310}},
		{"Seedlings planted", []interface{}{4200, 6800, 3100, 5900}},
		{"Patrols conducted", []interface{}{36, 41, 39, 44}},
		{"Illegal logging incidents", []interface{}{5, 3, 4, 2}},
		{"Charcoal kilns destroyed", []interface{}{2, 1, "", 1}},
		{"Source: CFM monitoring reports", nil},
	},
}

// WriteWorkbook saves a quarterly survey workbook matching the default layout
func WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", VSLASheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ForestrySheet); err != nil {
		return err
	}

	f.SetCellValue(VSLASheet, "B1", "VSLA Quarterly Monitoring")
	writeHeader(f, VSLASheet, "Band")
	for _, b := range vslaBlocks {
		if err := writeBlock(f, VSLASheet, b); err != nil {
			return err
		}
	}

	f.SetCellValue(ForestrySheet, "B1", "Community Forest Management")
	writeHeader(f, ForestrySheet, "Indicator")
	if err := writeBlock(f, ForestrySheet, forestryBlock); err != nil {
		return err
	}

	f.SetColWidth(VSLASheet, "B", "B", 34)
	f.SetColWidth(ForestrySheet, "B", "B", 38)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save sample workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet, label string) {
	f.SetCellValue(sheet, "B3", label)
	for i, q := range Quarters {
		cell, _ := excelize.CoordinatesToCellName(3+i, 3)
		f.SetCellValue(sheet, cell, q)
	}
}

func writeBlock(f *excelize.File, sheet string, b block) error {
	if b.titleRow > 0 && b.titleRow != 3 {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", b.titleRow), b.title)
	}

	totals := make([]int, len(Quarters))
	row := b.firstRow
	for _, ln := range b.rows {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ln.label)
		for i, v := range ln.values {
			cell, _ := excelize.CoordinatesToCellName(3+i, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if n, ok := v.(int); ok {
				totals[i] += n
			}
		}
		row++
	}

	if b.total {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Total")
		for i, n := range totals {
			cell, _ := excelize.CoordinatesToCellName(3+i, row)
			f.SetCellValue(sheet, cell, n)
		}
	}
	return nil
}

// RopesHeader is the header line of the sample ropes CSV
var RopesHeader = []string{"Member ID", "Member Name", "Group", "Village", "Gender", "Ropes", "Harvest (kg)"}

var ropesRows = [][]string{
	{"M001", "Zuhura Hamadi", "Tumaini", "Paje", "F", "40", "310"},
	{"M002", "Mwanaisha Ali", "Tumaini", "Paje", "F", "25", "190"},
	{"M003", "Juma Said", "Tumaini", "Paje", "M", "12", "85"},
	{"M004", "Asha Khamis", "Upendo", "Jambiani", "F", "60", "455"},
	{"M005", "Halima Omar", "Upendo", "Jambiani", "F", "8", "50"},
	{"M006", "Fatma Rashid", "Upendo", "Jambiani", "F", "0", "0"},
	{"M007", "Salim Haji", "Upendo", "Jambiani", "M", "30", "240"},
	{"M008", "Mwajuma Suleiman", "Amani", "Bwejuu", "F", "18", "130"},
	{"M009", "Rukia Mussa", "Amani", "Bwejuu", "F", "", ""},
	{"M010", "Time Kombo", "Amani", "Bwejuu", "F", "22", "160"},
	{"M011", "Bakari Mzee", "Amani", "Bwejuu", "M", "n/a", ""},
	{"M012", "Saada Vuai", "Amani", "Bwejuu", "F", "15", "105"},
}

// WriteRopesCSV saves a member-level seaweed farming CSV (UTF-8)
func WriteRopesCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sample csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(RopesHeader); err != nil {
		return err
	}
	if err := w.WriteAll(ropesRows); err != nil {
		return err
	}
	return w.Error()
}
