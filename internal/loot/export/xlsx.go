package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/louisbranch/lootforge/internal/loot"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Loot"

var fixedColumns = []string{"Name", "Quality", "Type", "Subtype", "Prefix", "Suffix"}

// Columns returns the header row for items: the fixed item columns, the
// sorted union of attribute names, then Metadata.
func Columns(items []loot.Item) []string {
	seen := map[string]struct{}{}
	for _, item := range items {
		for name := range item.Attributes {
			seen[name] = struct{}{}
		}
	}
	attrs := make([]string, 0, len(seen))
	for name := range seen {
		attrs = append(attrs, name)
	}
	sort.Strings(attrs)

	out := make([]string, 0, len(fixedColumns)+len(attrs)+1)
	out = append(out, fixedColumns...)
	out = append(out, attrs...)
	return append(out, "Metadata")
}

// WriteXLSX writes one row per item to a workbook on w. Attribute cells hold
// the attribute's value; items without an attribute leave the cell blank.
func WriteXLSX(w io.Writer, items []loot.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	columns := Columns(items)
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	attrColumns := columns[len(fixedColumns) : len(columns)-1]
	for i, item := range items {
		row := make([]any, 0, len(columns))
		row = append(row, item.Name, item.Quality, item.Type, item.Subtype, item.Prefix.Name, item.Suffix.Name)
		for _, name := range attrColumns {
			if attr, ok := item.Attributes[name]; ok {
				row = append(row, cellValue(attr.InitialValue))
			} else {
				row = append(row, nil)
			}
		}
		md := ""
		if len(item.Metadata) > 0 {
			data, err := json.Marshal(item.Metadata)
			if err != nil {
				return fmt.Errorf("encode metadata of row %d: %w", i+2, err)
			}
			md = string(data)
		}
		row = append(row, md)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValue keeps finite values numeric. Infinities and NaN are written as
// text since a numeric cell cannot hold them.
func cellValue(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
