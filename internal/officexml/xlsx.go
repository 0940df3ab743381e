package officexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/veldt-labs/docsift/internal/archive"
	"github.com/veldt-labs/docsift/internal/core/domain"
)

// maxProbedSheets bounds the worksheet probe when workbook metadata is
// unresolvable.
const maxProbedSheets = 30

// sheetRef pairs a sheet's display name with its worksheet entry path.
type sheetRef struct {
	name string
	path string
}

// ExtractSpreadsheetText returns the cell text of a spreadsheet, one sheet
// after another. Each sheet is a name header followed by its rows; each row
// is its ordered column values joined by "|".
func ExtractSpreadsheetText(container []byte) (string, error) {
	shared := sharedStrings(container)

	sheets := workbookSheets(container)
	if len(sheets) == 0 {
		sheets = probeSheets(container)
	}

	var parts []string
	for _, ref := range sheets {
		payload, ok := archive.Extract(ref.path, container)
		if !ok {
			continue
		}
		rows := sheetRows(payload, shared)
		if len(rows) == 0 {
			continue
		}
		parts = append(parts, "=== "+ref.name+" ===\n"+strings.Join(rows, "\n"))
	}

	text := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if text == "" {
		return "", fmt.Errorf("no cell text in spreadsheet: %w", domain.ErrInvalidFormat)
	}
	return text, nil
}

// workbookSheets resolves the ordered sheet list through xl/workbook.xml and
// its relationship part. An empty result means the metadata was unresolvable.
func workbookSheets(container []byte) []sheetRef {
	workbook, ok := archive.Extract("xl/workbook.xml", container)
	if !ok {
		return nil
	}
	rels, ok := archive.Extract("xl/_rels/workbook.xml.rels", container)
	if !ok {
		return nil
	}

	targets := relationshipTargets(rels)

	var sheets []sheetRef
	dec := xml.NewDecoder(bytes.NewReader(workbook))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, isStart := tok.(xml.StartElement)
		if !isStart || start.Name.Local != "sheet" {
			continue
		}

		var name, relID string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "id": // r:id
				relID = attr.Value
			}
		}

		target, ok := targets[relID]
		if !ok || name == "" {
			continue
		}
		sheets = append(sheets, sheetRef{name: name, path: worksheetPath(target)})
	}

	return sheets
}

// relationshipTargets maps relationship ids to their targets.
func relationshipTargets(rels []byte) map[string]string {
	targets := make(map[string]string)

	dec := xml.NewDecoder(bytes.NewReader(rels))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, isStart := tok.(xml.StartElement)
		if !isStart || start.Name.Local != "Relationship" {
			continue
		}

		var id, target string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if id != "" && target != "" {
			targets[id] = target
		}
	}

	return targets
}

// worksheetPath normalises a relationship target into an archive entry path.
// Targets are relative to xl/ unless they are already absolute.
func worksheetPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return "xl/" + target
}

// probeSheets guesses worksheet paths when workbook metadata is missing.
func probeSheets(container []byte) []sheetRef {
	var sheets []sheetRef
	for i := 1; i <= maxProbedSheets; i++ {
		path := fmt.Sprintf("xl/worksheets/sheet%d.xml", i)
		if _, ok := archive.Extract(path, container); !ok {
			continue
		}
		sheets = append(sheets, sheetRef{name: fmt.Sprintf("Sheet%d", i), path: path})
	}
	return sheets
}

// sharedStrings builds the ordered shared-string table: each "si" element's
// concatenated "t" text, in document order.
func sharedStrings(container []byte) []string {
	payload, ok := archive.Extract("xl/sharedStrings.xml", container)
	if !ok {
		return nil
	}

	var table []string
	var current strings.Builder
	inItem := false
	textDepth := 0

	dec := xml.NewDecoder(bytes.NewReader(payload))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				current.Reset()
			case "t":
				if inItem {
					textDepth++
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				table = append(table, current.String())
				inItem = false
			case "t":
				if textDepth > 0 {
					textDepth--
				}
			}
		case xml.CharData:
			if textDepth > 0 {
				current.Write(t)
			}
		}
	}

	return table
}

// sheetRows parses a worksheet and returns its pipe-joined rows.
func sheetRows(payload []byte, shared []string) []string {
	var rows []string

	var cells []string   // current row values, indexed by column-1
	maxCol := 0          // highest occupied column in the current row
	var cellType string  // current cell's t attribute
	var cellCol int      // current cell's resolved column
	var value bytes.Buffer
	inValue := false  // inside <v>
	inInline := false // inside <is><t>
	inCell := false

	flushCell := func() {
		if !inCell {
			return
		}
		text := cellValue(cellType, value.String(), shared)
		for len(cells) < cellCol {
			cells = append(cells, "")
		}
		cells[cellCol-1] = text
		if cellCol > maxCol {
			maxCol = cellCol
		}
		inCell = false
	}

	dec := xml.NewDecoder(bytes.NewReader(payload))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				cells = cells[:0]
				maxCol = 0
			case "c":
				inCell = true
				cellType = ""
				cellCol = maxCol + 1
				value.Reset()
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						cellType = attr.Value
					case "r":
						if col := columnOf(attr.Value); col > 0 {
							cellCol = col
						}
					}
				}
			case "v":
				if inCell {
					inValue = true
				}
			case "t":
				if inCell && cellType == "inlineStr" {
					inInline = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "row":
				flushCell()
				if row := strings.Join(cells, "|"); strings.Trim(row, "|") != "" {
					rows = append(rows, row)
				}
			case "c":
				flushCell()
			case "v":
				inValue = false
			case "t":
				inInline = false
			}
		case xml.CharData:
			if inValue || inInline {
				value.Write(t)
			}
		}
	}

	return rows
}

// cellValue resolves a cell's textual value from its declared type.
func cellValue(cellType, raw string, shared []string) string {
	switch cellType {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || idx < 0 || idx >= len(shared) {
			return raw
		}
		return shared[idx]
	case "b":
		if strings.TrimSpace(raw) == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		// inlineStr text and plain values both arrive as the raw buffer.
		return raw
	}
}

// columnOf resolves the column number from an alphabetic cell reference
// such as "B7" (base-26, A=1). Zero means no usable reference.
func columnOf(ref string) int {
	col := 0
	for _, r := range ref {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r < 'A' || r > 'Z' {
			break
		}
		col = col*26 + int(r-'A'+1)
	}
	return col
}
