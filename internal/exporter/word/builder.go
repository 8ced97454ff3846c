package word

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"strings"

	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

// The template holds {{Content}} alone in a paragraph. Closing and reopening
// that paragraph lets real tables be injected in its place.
const (
	contentPlaceholder = "{{Content}}"
	closeParagraph     = "</w:t></w:r></w:p>"
	openParagraph      = "<w:p><w:r><w:t>"
)

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Name() string {
	return "word"
}

func (e *WordExporter) Export(r *model.Report, cfg *config.Config) error {
	tmpl, err := docx.ReadDocxFromFS("template.docx", templateFS)
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}
	defer tmpl.Close()

	doc := tmpl.Editable()

	// 1. Replace header placeholders
	for placeholder, value := range map[string]string{
		"{{Title}}":  r.Title,
		"{{Date}}":   r.Date(),
		"{{Source}}": r.Source,
	} {
		if err := doc.Replace(placeholder, value, -1); err != nil {
			return fmt.Errorf("failed to fill %s: %w", placeholder, err)
		}
	}

	// 2. Inject the body as WordprocessingML
	doc.ReplaceRaw(contentPlaceholder, closeParagraph+buildContent(r)+openParagraph, -1)

	outFile := cfg.GetOutputPath("docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

// buildContent renders highlights, every table and the warnings
func buildContent(r *model.Report) string {
	var sb strings.Builder

	if highlights := common.Highlights(r); len(highlights) > 0 {
		sb.WriteString(paragraph("Highlights", true, 28))
		for _, h := range highlights {
			sb.WriteString(paragraph("• "+h, false, 0))
		}
	}

	var grids []common.Grid
	for _, b := range r.Bands {
		grids = append(grids, common.BandGrid(b))
	}
	for _, s := range r.Indicators {
		grids = append(grids, common.IndicatorGrid(s))
	}
	grids = append(grids, common.RopesGrids(r.Ropes)...)
	if len(r.Warnings) > 0 {
		grids = append(grids, common.WarningGrid(r.Warnings))
	}

	for _, g := range grids {
		sb.WriteString(paragraph(g.Title, true, 26))
		sb.WriteString(table(g))
		if g.Note != "" {
			sb.WriteString(paragraph(g.Note, false, 0))
		}
	}
	return sb.String()
}

// paragraph renders one run; size is in half-points, 0 keeps the default
func paragraph(text string, bold bool, size int) string {
	var props strings.Builder
	if bold {
		props.WriteString("<w:b/>")
	}
	if size > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, size)
	}

	var sb strings.Builder
	sb.WriteString("<w:p>")
	if bold {
		sb.WriteString(`<w:pPr><w:spacing w:before="240" w:after="80"/></w:pPr>`)
	}
	sb.WriteString("<w:r>")
	if props.Len() > 0 {
		sb.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}
	sb.WriteString(`<w:t xml:space="preserve">` + escape(text) + "</w:t></w:r></w:p>")
	return sb.String()
}

func table(g common.Grid) string {
	numeric := map[int]bool{}
	for _, c := range g.Numeric {
		numeric[c] = true
	}

	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&sb, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="D4D4D4"/>`, side)
	}
	sb.WriteString(`</w:tblBorders></w:tblPr>`)

	sb.WriteString("<w:tr>")
	for _, h := range g.Headers {
		sb.WriteString(cell(h, true, "center"))
	}
	sb.WriteString("</w:tr>")

	for _, row := range g.Rows {
		sb.WriteString("<w:tr>")
		for i := range g.Headers {
			var text string
			if i < len(row) {
				text = row[i]
			}
			align := "left"
			if numeric[i] {
				align = "right"
			}
			sb.WriteString(cell(text, false, align))
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

func cell(text string, header bool, align string) string {
	shading, rPr := "", ""
	if header {
		shading = `<w:shd w:val="clear" w:color="auto" w:fill="E0E0E0"/>`
		rPr = "<w:rPr><w:b/></w:rPr>"
	}
	return fmt.Sprintf(`<w:tc><w:tcPr>%s</w:tcPr><w:p><w:pPr><w:jc w:val="%s"/></w:pPr><w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`,
		shading, align, rPr, escape(text))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
