package exporter

import (
	"os"
	"strings"

	"survey-recon/internal/exporter/console"
	"survey-recon/internal/exporter/dashboard"
	"survey-recon/internal/exporter/html"
	"survey-recon/internal/exporter/pdf"
	"survey-recon/internal/exporter/word"
)

// GetExporters returns the Exporters for the requested formats, in request
// order, plus every format name it did not recognise
func GetExporters(formats []string) ([]Exporter, []string) {
	exporters := []Exporter{}
	var unknown []string
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" {
			continue
		}

		var e Exporter
		switch fmtStr {
		case "console", "text":
			e = console.NewConsoleExporter(os.Stdout)
		case "json", "dashboard":
			e = dashboard.NewDashboardExporter()
		case "pdf":
			e = pdf.NewPDFExporter()
		case "excel", "xlsx":
			e = NewExcelExporter()
		case "word", "docx":
			e = word.NewWordExporter()
		case "html":
			e = html.NewHTMLExporter()
		default:
			unknown = append(unknown, fmtStr)
			continue
		}

		// aliases resolve to the same exporter
		if seen[e.Name()] {
			continue
		}
		seen[e.Name()] = true
		exporters = append(exporters, e)
	}

	return exporters, unknown
}
