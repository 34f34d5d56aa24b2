package service

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSheetCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"บ้านเลขที่,ชื่อสมาชิก,จำนวนเงิน,หมายเหตุ",
		"99/1,สมชาย ใจดี,1500.00,ค่าส่วนกลาง",
		"99/2,สมหญิง รักเรียน,2000,",
		",,,",
		"99/3,,1000,",
	}, "\n")

	rows, err := ParseSheet("fees.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseSheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (blank row skipped)", len(rows))
	}
	if rows[0].RowNumber != 2 {
		t.Errorf("first data row number = %d, want 2 (header is row 1)", rows[0].RowNumber)
	}
	if rows[0].HouseNo != "99/1" || rows[0].MemberName != "สมชาย ใจดี" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	// blank row 4 skipped, so the third kept row is origin row 5
	if rows[2].RowNumber != 5 {
		t.Errorf("third kept row number = %d, want 5", rows[2].RowNumber)
	}
}

func TestParseSheetEnglishHeader(t *testing.T) {
	csvData := "house_no,name,amount\n11/1,Alice,500\n"
	rows, err := ParseSheet("fees.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseSheet: %v", err)
	}
	if len(rows) != 1 || rows[0].HouseNo != "11/1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParseSheetMissingHeader(t *testing.T) {
	csvData := "บ้านเลขที่,หมายเหตุ\n99/1,x\n"
	_, err := ParseSheet("fees.csv", strings.NewReader(csvData))
	if err != ErrMissingHeader {
		t.Fatalf("got %v, want ErrMissingHeader", err)
	}
}

func TestValidateRows(t *testing.T) {
	cases := []struct {
		name       string
		row        SheetRow
		wantStatus string
		wantAmount string
	}{
		{
			"valid row",
			SheetRow{RowNumber: 2, HouseNo: "99/1", MemberName: "สมชาย", AmountText: "1500"},
			RowStatusValid, "1500.00",
		},
		{
			"thousand separator",
			SheetRow{RowNumber: 3, HouseNo: "99/2", MemberName: "สมหญิง", AmountText: "12,500.50"},
			RowStatusValid, "12500.50",
		},
		{
			"missing house",
			SheetRow{RowNumber: 4, MemberName: "สมชาย", AmountText: "1500"},
			RowStatusInvalid, "",
		},
		{
			"missing name",
			SheetRow{RowNumber: 5, HouseNo: "99/3", AmountText: "1500"},
			RowStatusInvalid, "",
		},
		{
			"bad amount",
			SheetRow{RowNumber: 6, HouseNo: "99/4", MemberName: "x", AmountText: "abc"},
			RowStatusInvalid, "",
		},
		{
			"negative amount",
			SheetRow{RowNumber: 7, HouseNo: "99/5", MemberName: "x", AmountText: "-10"},
			RowStatusInvalid, "",
		},
		{
			"empty amount",
			SheetRow{RowNumber: 8, HouseNo: "99/6", MemberName: "x", AmountText: ""},
			RowStatusInvalid, "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateRows([]SheetRow{tc.row})
			if len(got) != 1 {
				t.Fatalf("got %d results", len(got))
			}
			if got[0].Status != tc.wantStatus {
				t.Errorf("status = %q, want %q (message: %s)", got[0].Status, tc.wantStatus, got[0].Message)
			}
			if tc.wantStatus == RowStatusValid && got[0].AmountText != tc.wantAmount {
				t.Errorf("amount = %q, want %q", got[0].AmountText, tc.wantAmount)
			}
			if tc.wantStatus == RowStatusInvalid && got[0].Message == "" {
				t.Error("invalid row has no message")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	rows := ValidateRows([]SheetRow{
		{RowNumber: 2, HouseNo: "1", MemberName: "a", AmountText: "100.50"},
		{RowNumber: 3, HouseNo: "2", MemberName: "b", AmountText: "200"},
		{RowNumber: 4, HouseNo: "", MemberName: "c", AmountText: "999"},
	})
	s := Summarize(rows)
	if s.TotalRows != 3 || s.ValidRows != 2 || s.InvalidRows != 1 {
		t.Errorf("summary counts = %+v", s)
	}
	if s.TotalAmount != "300.50" {
		t.Errorf("total = %q, want 300.50 (invalid rows excluded)", s.TotalAmount)
	}
}

func TestParseExcludedRows(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int
		err  bool
	}{
		{"empty", "", nil, false},
		{"json array", "[2,3]", []int{2, 3}, false},
		{"comma string", `"2,3"`, []int{2, 3}, false},
		{"bracketed string", `"[2, 3]"`, []int{2, 3}, false},
		{"single value string", `"7"`, []int{7}, false},
		{"empty string", `""`, nil, false},
		{"empty brackets string", `"[]"`, nil, false},
		{"garbage", `"a,b"`, nil, true},
		{"object", `{"x":1}`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseExcludedRows(json.RawMessage(tc.raw))
			if tc.err {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExcludedRows: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for _, n := range tc.want {
				if _, ok := got[n]; !ok {
					t.Errorf("missing row %d in %v", n, got)
				}
			}
		})
	}
}
