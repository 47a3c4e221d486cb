package capgains

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/capgains/date"
	"github.com/xuri/excelize/v2"
)

// Columns of the transaction ledger.
const (
	ColScrip    = "Scrip Name"
	ColType     = "Transaction Type"
	ColDate     = "Transaction Date"
	ColQuantity = "Quantity"
	ColRate     = "Rate"
	ColAmount   = "Amount"
	ColExpenses = "Expenses"
)

// ledgerColumns lists the columns a ledger must have, in their usual order.
var ledgerColumns = []string{ColScrip, ColType, ColDate, ColQuantity, ColRate, ColAmount, ColExpenses}

// ErrMissingColumn is returned when the ledger header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// FieldError reports an invalid cell in the ledger.
type FieldError struct {
	Row    int    // 1-based row number, the header being row 1
	Column string // column name
	Value  string // raw cell value
	Err    error
}

func (e *FieldError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: column %q: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// LoadOptions control how a ledger file is read.
type LoadOptions struct {
	Currency string // currency of all amounts
	Sheet    string // sheet of an Excel workbook, the first one if empty
}

// LoadTransactions reads the ledger file at path. Files with the ".xlsx" extension are read as
// Excel workbooks, any other file as CSV.
func LoadTransactions(path string, opts LoadOptions) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	var txs []Transaction
	switch FormatOf(path) {
	case XLSX:
		txs, err = DecodeXLSX(f, opts)
	default:
		txs, err = DecodeCSV(f, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return txs, nil
}

// DecodeCSV decodes transactions from a CSV ledger whose first line is the header.
func DecodeCSV(r io.Reader, opts LoadOptions) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are reported per field instead
	cr.TrimLeadingSpace = true

	var rows []tableRow
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, tableRow{line: line, cells: cells})
	}
	return decodeTable(rows, opts.Currency)
}

// DecodeXLSX decodes transactions from an Excel workbook whose first row is the header.
//
// Dates can either be text in the ledger format or Excel date cells.
func DecodeXLSX(r io.Reader, opts LoadOptions) ([]Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}

	rows := make([]tableRow, 0, len(cells))
	for i, c := range cells {
		rows = append(rows, tableRow{line: i + 1, cells: c})
	}
	if len(rows) > 0 {
		// raw date cells are serial numbers, turn them into the ledger format.
		if col := columnIndex(rows[0].cells, ColDate); col >= 0 {
			for _, row := range rows[1:] {
				if col < len(row.cells) {
					row.cells[col] = excelDate(row.cells[col])
				}
			}
		}
	}
	return decodeTable(rows, opts.Currency)
}

// excelDate converts an Excel serial date to the ledger date format, other values are left as is.
func excelDate(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return date.New(t.Date()).Format(date.BrokerFormat)
}

// tableRow is a row of cells with its position in the source file.
type tableRow struct {
	line  int
	cells []string
}

func (r tableRow) isBlank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
			return i
		}
	}
	return -1
}

// decodeTable decodes transactions from rows, the first non blank row being the header.
func decodeTable(rows []tableRow, currency string) ([]Transaction, error) {
	for len(rows) > 0 && rows[0].isBlank() {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0].cells
	index := make(map[string]int, len(ledgerColumns))
	var missing []string
	for _, name := range ledgerColumns {
		i := columnIndex(header, name)
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		index[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var txs []Transaction
	for _, row := range rows[1:] {
		if row.isBlank() {
			continue
		}
		tx, err := decodeRow(row, index, currency)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// decodeRow decodes and validates a single ledger row.
func decodeRow(row tableRow, index map[string]int, currency string) (Transaction, error) {
	cell := func(column string) string {
		i := index[column]
		if i >= len(row.cells) {
			return ""
		}
		return strings.TrimSpace(row.cells[i])
	}
	fail := func(column string, err error) error {
		return &FieldError{Row: row.line, Column: column, Value: cell(column), Err: err}
	}

	var (
		tx  Transaction
		err error
	)
	if tx.Scrip = cell(ColScrip); tx.Scrip == "" {
		return tx, fail(ColScrip, errors.New("scrip name is empty"))
	}
	if tx.Type, err = ParseTransactionType(cell(ColType)); err != nil {
		return tx, fail(ColType, err)
	}
	if tx.Date, err = date.ParseBroker(cell(ColDate)); err != nil {
		return tx, fail(ColDate, err)
	}
	if tx.Quantity, err = ParseQuantity(cell(ColQuantity)); err != nil {
		return tx, fail(ColQuantity, err)
	}
	if tx.Rate, err = ParseMoney(cell(ColRate), currency); err != nil {
		return tx, fail(ColRate, err)
	}
	if tx.Amount, err = ParseMoney(cell(ColAmount), currency); err != nil {
		return tx, fail(ColAmount, err)
	}
	if cell(ColExpenses) == "" {
		tx.Expenses = M(0, currency)
	} else if tx.Expenses, err = ParseMoney(cell(ColExpenses), currency); err != nil {
		return tx, fail(ColExpenses, err)
	}
	if err := tx.Validate(); err != nil {
		return tx, &FieldError{Row: row.line, Err: err}
	}
	return tx, nil
}
