package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/iwato-orders/internal/aggregate"
	"github.com/ryabkov82/iwato-orders/internal/column"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/table"
)

func group() aggregate.Group {
	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return aggregate.Group{
		Supplier: "A商店",
		Records: []aggregate.Record{
			{
				Keys: map[column.Field]table.Value{
					column.UsageDate: table.DateValue(day, ""),
					column.ItemName:  table.TextValue("米"),
				},
				Quantities: map[column.Field]decimal.Decimal{
					column.ResidentCount: decimal.NewFromInt(8),
					column.StaffCount:    decimal.NewFromInt(2),
				},
			},
			{
				Keys: map[column.Field]table.Value{
					column.ItemName: table.TextValue("味噌"),
				},
				Quantities: map[column.Field]decimal.Decimal{
					column.ResidentCount: decimal.RequireFromString("1.5"),
					column.StaffCount:    decimal.Zero,
				},
			},
		},
	}
}

func open(t *testing.T, data []byte) (*excelize.File, string) {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f, f.GetSheetName(0)
}

func TestRender_Layout(t *testing.T) {
	t.Parallel()

	data, err := New(DefaultStyleSheet()).Render(group(), facility.Iwato)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, sheet := open(t, data)

	for cell, want := range map[string]string{
		"A3": "A商店　御中",
		"B1": "注文書（介護老人福祉施設いわと）",
		"M2": "(有) ハートミール",
	} {
		got, _ := f.GetCellValue(sheet, cell)
		if got != want {
			t.Fatalf("%s want=%q got=%q", cell, want, got)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		t.Fatalf("GetMergeCells: %v", err)
	}
	ranges := make(map[string]bool)
	for _, m := range merges {
		ranges[m.GetStartAxis()+":"+m.GetEndAxis()] = true
	}
	for _, want := range []string{"A3:B3", "B1:F1", "M2:O2"} {
		if !ranges[want] {
			t.Fatalf("merge %s missing, have %v", want, ranges)
		}
	}

	cols := facility.Iwato.Columns()
	for c, field := range cols {
		ref, _ := excelize.CoordinatesToCellName(c+1, TableRow)
		got, _ := f.GetCellValue(sheet, ref)
		if got != field.Label() {
			t.Fatalf("table header %s want=%q got=%q", ref, field.Label(), got)
		}
	}
	if got, _ := f.GetCellValue(sheet, "C7"); got != "8" {
		t.Fatalf("入所者 want 8, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "C8"); got != "1.5" {
		t.Fatalf("入所者 want 1.5, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "A8"); got != "" {
		t.Fatalf("absent 使用日 must be empty, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "A7"); got != "2024/4/1" {
		t.Fatalf("使用日 want 2024/4/1, got %q", got)
	}
}

func TestRender_Styling(t *testing.T) {
	t.Parallel()

	style := DefaultStyleSheet()
	data, err := New(style).Render(group(), facility.UHouse)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, sheet := open(t, data)

	last, _ := excelize.CoordinatesToCellName(len(facility.UHouse.Columns()), TableRow+2)
	for _, ref := range []string{"A6", "B7", last} {
		id, err := f.GetCellStyle(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellStyle(%s): %v", ref, err)
		}
		s, err := f.GetStyle(id)
		if err != nil {
			t.Fatalf("GetStyle: %v", err)
		}
		if len(s.Border) != 4 {
			t.Fatalf("%s want 4 borders, got %d", ref, len(s.Border))
		}
		if s.Font == nil || s.Font.Size != style.BodySize || s.Font.Family != style.FontFamily {
			t.Fatalf("%s unexpected body font %+v", ref, s.Font)
		}
		if s.Alignment == nil || !s.Alignment.WrapText || s.Alignment.Vertical != "center" {
			t.Fatalf("%s unexpected alignment %+v", ref, s.Alignment)
		}
	}

	for row, want := range map[int]float64{1: 40, 2: 35, 3: 35, 4: 30, 6: 30, 8: 30} {
		got, err := f.GetRowHeight(sheet, row)
		if err != nil {
			t.Fatalf("GetRowHeight(%d): %v", row, err)
		}
		if got != want {
			t.Fatalf("row %d height want=%v got=%v", row, want, got)
		}
	}

	layout, err := f.GetPageLayout(sheet)
	if err != nil {
		t.Fatalf("GetPageLayout: %v", err)
	}
	if layout.Orientation == nil || *layout.Orientation != "landscape" {
		t.Fatalf("want landscape orientation")
	}
	if layout.Size == nil || *layout.Size != paperA4 {
		t.Fatalf("want A4 paper")
	}
	margins, err := f.GetPageMargins(sheet)
	if err != nil {
		t.Fatalf("GetPageMargins: %v", err)
	}
	if *margins.Left != 0.3 || *margins.Right != 0.3 || *margins.Top != 0.5 || *margins.Bottom != 0.5 {
		t.Fatalf("unexpected margins %v %v %v %v", *margins.Left, *margins.Right, *margins.Top, *margins.Bottom)
	}
}

func TestRender_EmptyGroupKeepsHeader(t *testing.T) {
	t.Parallel()

	data, err := New(DefaultStyleSheet()).Render(aggregate.Group{Supplier: "B/C"}, facility.UHouse)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, sheet := open(t, data)
	if got, _ := f.GetCellValue(sheet, "C6"); got != "ユーハウス入所者" {
		t.Fatalf("C6 want ユーハウス入所者, got %q", got)
	}
}

func TestStyleSheet_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultStyleSheet().Validate(); err != nil {
		t.Fatalf("default style must be valid: %v", err)
	}
	bad := DefaultStyleSheet()
	bad.HeaderHeights = []float64{40}
	bad.Orientation = "sideways"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}
