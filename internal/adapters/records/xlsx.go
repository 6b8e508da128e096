package records

import (
	"fmt"
	"io"
	"kill-chain-service/internal/domain"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads every sheet of a workbook as a section. The first row of a
// sheet holds field names; blank rows are skipped.
func DecodeXLSX(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("decode xlsx: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc := &Document{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("decode xlsx: read sheet %q: %w", sheet, err)
		}
		doc.Sections = append(doc.Sections, Section{Name: sheet, Rows: sheetRecords(rows)})
	}

	return doc, nil
}

func sheetRecords(rows [][]string) []domain.RawRecord {
	if len(rows) == 0 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.RawRecord, len(header))
		blank := true
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				blank = false
			}
			rec[header[i]] = cell
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// EncodeXLSX writes one sheet per section with a header row of field names.
func EncodeXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range doc.Sections {
		columns := columnsFor(s.Name)
		if columns == nil {
			columns = unionKeys(s.Rows)
		}

		rows := make([][]string, 0, len(s.Rows))
		for _, rec := range s.Rows {
			row := make([]string, len(columns))
			for j, c := range columns {
				row[j] = rec[c]
			}
			rows = append(rows, row)
		}

		if err := writeSheet(f, i, s.Name, columns, rows); err != nil {
			return fmt.Errorf("encode xlsx: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("encode xlsx: write workbook: %w", err)
	}
	return nil
}

// EncodeAssignmentsXLSX writes assignment rows to a single "assignments" sheet.
func EncodeAssignmentsXLSX(w io.Writer, rows []domain.Assignment) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	cells := make([][]string, 0, len(rows))
	for _, a := range rows {
		cells = append(cells, assignmentRow(a))
	}
	if err := writeSheet(f, 0, "assignments", AssignmentColumns, cells); err != nil {
		return fmt.Errorf("encode assignments xlsx: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("encode assignments xlsx: write workbook: %w", err)
	}
	return nil
}

// writeSheet fills sheet number idx. The first sheet reuses the workbook's
// default sheet.
func writeSheet(f *excelize.File, idx int, name string, header []string, rows [][]string) error {
	if idx == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet %q: %w", name, err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func unionKeys(rows []domain.RawRecord) []string {
	return orderedKeys(nil, mergeRows(rows))
}

func mergeRows(rows []domain.RawRecord) domain.RawRecord {
	all := domain.RawRecord{}
	for _, r := range rows {
		for k, v := range r {
			if v != "" {
				all[k] = v
			}
		}
	}
	return all
}
