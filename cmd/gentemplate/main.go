// Command gentemplate regenerates the Word template embedded by the word
// exporter.
package main

import (
	"archive/zip"
	"flag"
	"log"
	"os"
)

var parts = []struct {
	name, body string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	// Required by some parsers
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	// Each placeholder sits alone in its run so the exporter can replace it
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b/><w:color w:val="2E7D32"/><w:sz w:val="36"/></w:rPr><w:t>{{Title}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Generated: </w:t></w:r><w:r><w:t>{{Date}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Workbook: </w:t></w:r><w:r><w:t>{{Source}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{Content}}</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="709" w:footer="709" w:gutter="0"/></w:sectPr>
</w:body>
</w:document>`},
}

func main() {
	out := flag.String("o", "internal/exporter/word/template.docx", "output path")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, p := range parts {
		part, err := w.Create(p.name)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := part.Write([]byte(p.body)); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", *out)
}
