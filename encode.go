package capgains

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Format is a tabular file format for ledgers and gains.
type Format int

const (
	CSV Format = iota
	XLSX
	JSONL
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	case JSONL:
		return "jsonl"
	default:
		return "unknown"
	}
}

// FormatOf returns the format matching the file extension, CSV by default.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return XLSX
	case ".jsonl":
		return JSONL
	default:
		return CSV
	}
}

// GainsSheet is the name of the sheet written in Excel workbooks.
const GainsSheet = "Capital Gains"

// RecordHeader is the header row of the gains table.
var RecordHeader = []string{
	"Scrip Name",
	"Date of Purchase",
	"Quantity",
	"Purchase Rate",
	"Purchase Amount",
	"Purchase Expense",
	"Holding Period (Months)",
	"Date of Sale",
	"Sell Rate",
	"Sell Amount",
	"Sell Expense",
	"Short Term Capital Gain",
	"Long Term Capital Gain",
}

// cells returns the record as text cells in the RecordHeader order.
func (r MatchRecord) cells() []string {
	return []string{
		r.Scrip,
		r.PurchaseDate.String(),
		r.Quantity.String(),
		r.PurchaseRate.Decimal().String(),
		r.PurchaseAmount.Decimal().String(),
		r.PurchaseExpense.Decimal().String(),
		strconv.Itoa(r.HoldingMonths),
		r.SaleDate.String(),
		r.SaleRate.Decimal().String(),
		r.SaleAmount.Decimal().String(),
		r.SaleExpense.Decimal().String(),
		r.ShortTermGain.Decimal().String(),
		r.LongTermGain.Decimal().String(),
	}
}

// values returns the record as typed spreadsheet values in the RecordHeader order.
func (r MatchRecord) values() []any {
	return []any{
		r.Scrip,
		r.PurchaseDate.String(),
		r.Quantity.Decimal().InexactFloat64(),
		r.PurchaseRate.Decimal().InexactFloat64(),
		r.PurchaseAmount.Decimal().InexactFloat64(),
		r.PurchaseExpense.Decimal().InexactFloat64(),
		r.HoldingMonths,
		r.SaleDate.String(),
		r.SaleRate.Decimal().InexactFloat64(),
		r.SaleAmount.Decimal().InexactFloat64(),
		r.SaleExpense.Decimal().InexactFloat64(),
		r.ShortTermGain.Decimal().InexactFloat64(),
		r.LongTermGain.Decimal().InexactFloat64(),
	}
}

// MarshalJSON writes the record as a JSON object with a stable field order.
func (r MatchRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("scrip", r.Scrip)
	w.Append("purchaseDate", r.PurchaseDate)
	w.Append("quantity", r.Quantity)
	w.Append("purchaseRate", r.PurchaseRate.Decimal())
	w.Append("purchaseAmount", r.PurchaseAmount.Decimal())
	w.Append("purchaseExpense", r.PurchaseExpense.Decimal())
	w.Append("holdingMonths", r.HoldingMonths)
	w.Append("saleDate", r.SaleDate)
	w.Append("saleRate", r.SaleRate.Decimal())
	w.Append("saleAmount", r.SaleAmount.Decimal())
	w.Append("saleExpense", r.SaleExpense.Decimal())
	w.Append("shortTermGain", r.ShortTermGain.Decimal())
	w.Append("longTermGain", r.LongTermGain.Decimal())
	w.Optional("currency", r.SaleAmount.Currency())
	return w.MarshalJSON()
}

// EncodeCSV writes the records as a CSV table with a header row.
func EncodeCSV(w io.Writer, records []MatchRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.cells()); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeJSONL writes one JSON object per record.
func EncodeJSONL(w io.Writer, records []MatchRecord) error {
	for _, r := range records {
		data, err := r.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal record for %q: %w", r.Scrip, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write JSONL record: %w", err)
		}
	}
	return nil
}

// EncodeXLSX writes the records as an Excel workbook with a single GainsSheet sheet.
func EncodeXLSX(w io.Writer, records []MatchRecord) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", GainsSheet); err != nil {
		return fmt.Errorf("cannot rename sheet: %w", err)
	}

	header := make([]any, len(RecordHeader))
	for i, h := range RecordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(GainsSheet, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(RecordHeader), 1)
	if err := f.SetCellStyle(GainsSheet, "A1", last, style); err != nil {
		return fmt.Errorf("cannot style header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := r.values()
		if err := f.SetSheetRow(GainsSheet, cell, &values); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(GainsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("cannot freeze header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// Encode writes the records in the given format.
func Encode(w io.Writer, format Format, records []MatchRecord) error {
	switch format {
	case XLSX:
		return EncodeXLSX(w, records)
	case JSONL:
		return EncodeJSONL(w, records)
	default:
		return EncodeCSV(w, records)
	}
}

// SaveRecords writes the records to path in the format given by its extension.
//
// The file is written next to its destination and renamed once complete, so path is either
// left untouched or holds the full table.
func SaveRecords(path string, records []MatchRecord) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create output file for %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, FormatOf(path), records); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
