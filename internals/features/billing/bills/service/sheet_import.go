// file: internals/features/billing/bills/service/sheet_import.go
//
// Two-phase bill sheet import: Preview parses and validates without touching
// state; Commit re-parses and creates the bill + bill rooms atomically.
package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	RowStatusValid   = "valid"
	RowStatusInvalid = "invalid"
)

// SheetRow: one raw data row. RowNumber is origin-1 (header is row 1, first
// data row is 2).
type SheetRow struct {
	RowNumber  int
	HouseNo    string
	MemberName string
	AmountText string
	Remark     string
}

// RowResult: a validated preview row.
type RowResult struct {
	RowNumber  int             `json:"row_number"`
	HouseNo    string          `json:"house_no"`
	MemberName string          `json:"member_name"`
	Amount     decimal.Decimal `json:"-"`
	AmountText string          `json:"amount"`
	Remark     string          `json:"remark,omitempty"`
	Status     string          `json:"status"`
	Message    string          `json:"message,omitempty"`
}

type SheetSummary struct {
	TotalRows   int    `json:"total_rows"`
	ValidRows   int    `json:"valid_rows"`
	InvalidRows int    `json:"invalid_rows"`
	TotalAmount string `json:"total_amount"`
}

// required header columns, Thai first (sheets come from the back office
// template), English accepted as fallback
var headerAliases = map[string][]string{
	"house_no":    {"บ้านเลขที่", "เลขที่บ้าน", "house_no", "unit"},
	"member_name": {"ชื่อสมาชิก", "ชื่อ-นามสกุล", "member_name", "name"},
	"amount":      {"จำนวนเงิน", "ยอดเงิน", "amount", "total_price"},
	"remark":      {"หมายเหตุ", "remark"},
}

var ErrMissingHeader = errors.New("required header columns not found")

// ParseSheet reads the first sheet of an xlsx workbook, or a UTF-8 delimited
// text file, into raw rows.
func ParseSheet(fileName string, r io.Reader) ([]SheetRow, error) {
	ext := strings.ToLower(fileName)
	if strings.HasSuffix(ext, ".xlsx") || strings.HasSuffix(ext, ".xlsm") || strings.HasSuffix(ext, ".xls") {
		return parseWorkbook(r)
	}
	return parseDelimited(r)
}

func parseWorkbook(r io.Reader) ([]SheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsFromTable(rows)
}

func parseDelimited(r io.Reader) ([]SheetRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsFromTable(records)
}

func rowsFromTable(table [][]string) ([]SheetRow, error) {
	if len(table) == 0 {
		return nil, ErrMissingHeader
	}
	cols, err := mapHeader(table[0])
	if err != nil {
		return nil, err
	}

	out := make([]SheetRow, 0, len(table)-1)
	for i, rec := range table[1:] {
		row := SheetRow{RowNumber: i + 2} // header is row 1
		row.HouseNo = cell(rec, cols["house_no"])
		row.MemberName = cell(rec, cols["member_name"])
		row.AmountText = cell(rec, cols["amount"])
		if c, ok := cols["remark"]; ok && c >= 0 {
			row.Remark = cell(rec, c)
		}
		// skip fully blank trailing rows
		if row.HouseNo == "" && row.MemberName == "" && row.AmountText == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func mapHeader(header []string) (map[string]int, error) {
	cols := map[string]int{}
	for idx, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range headerAliases {
			for _, a := range aliases {
				if name == strings.ToLower(a) {
					if _, seen := cols[key]; !seen {
						cols[key] = idx
					}
				}
			}
		}
	}
	for _, required := range []string{"house_no", "member_name", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, ErrMissingHeader
		}
	}
	return cols, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// ValidateRows marks each row valid/invalid with a reason.
func ValidateRows(rows []SheetRow) []RowResult {
	out := make([]RowResult, 0, len(rows))
	for _, r := range rows {
		res := RowResult{
			RowNumber:  r.RowNumber,
			HouseNo:    r.HouseNo,
			MemberName: r.MemberName,
			Remark:     r.Remark,
		}
		switch {
		case r.HouseNo == "":
			res.Status = RowStatusInvalid
			res.Message = "ไม่ระบุบ้านเลขที่"
			res.AmountText = r.AmountText
		case r.MemberName == "":
			res.Status = RowStatusInvalid
			res.Message = "ไม่ระบุชื่อสมาชิก"
			res.AmountText = r.AmountText
		default:
			amount, err := parseAmount(r.AmountText)
			if err != nil {
				res.Status = RowStatusInvalid
				res.Message = "จำนวนเงินไม่ถูกต้อง"
				res.AmountText = r.AmountText
			} else {
				res.Status = RowStatusValid
				res.Amount = amount
				res.AmountText = amount.StringFixed(2)
			}
		}
		out = append(out, res)
	}
	return out
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative amount")
	}
	return d, nil
}

// Summarize computes the preview summary over validated rows.
func Summarize(rows []RowResult) SheetSummary {
	s := SheetSummary{TotalRows: len(rows)}
	total := decimal.Zero
	for _, r := range rows {
		if r.Status == RowStatusValid {
			s.ValidRows++
			total = total.Add(r.Amount)
		} else {
			s.InvalidRows++
		}
	}
	s.TotalAmount = total.StringFixed(2)
	return s
}

// ParseExcludedRows accepts an array of integers, a comma-separated string
// ("2,3"), or a bracketed comma-separated string ("[2,3]").
func ParseExcludedRows(raw json.RawMessage) (map[int]struct{}, error) {
	out := map[int]struct{}{}
	if len(raw) == 0 {
		return out, nil
	}

	var nums []int
	if err := json.Unmarshal(raw, &nums); err == nil {
		for _, n := range nums {
			out[n] = struct{}{}
		}
		return out, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("excluded_rows must be an array or a comma-separated string")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("excluded_rows: %q is not a row number", part)
		}
		out[n] = struct{}{}
	}
	return out, nil
}
