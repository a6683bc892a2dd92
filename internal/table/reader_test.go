package table

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		ref, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", ref, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestRead_HeaderRowAndTypes(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	data := workbook(t, [][]interface{}{
		{"検収記録簿"},
		{},
		{" 使用日\n", "仕入先", "食品名", "入所者"},
		{day, "A商店", "米", 5},
		{nil, nil, nil, nil},
		{nil, "B青果", "人参", "三"},
	})

	tbl, err := Read(bytes.NewReader(data), ReadOptions{HeaderRow: 3})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tbl.Columns; len(got) != 4 || got[0] != "使用日" || got[3] != "入所者" {
		t.Fatalf("unexpected columns: %q", got)
	}
	if tbl.Len() != 2 {
		t.Fatalf("blank rows must be skipped, got %d rows", tbl.Len())
	}

	d := tbl.Get(0, "使用日")
	if d.Kind != Date || !d.Time.Equal(day) {
		t.Fatalf("使用日 want date %v, got %+v", day, d)
	}
	if n := tbl.Get(0, "入所者"); n.Kind != Number || n.Num != 5 {
		t.Fatalf("入所者 want number 5, got %+v", n)
	}
	if s := tbl.Get(1, "入所者"); s.Kind != Text || s.Text != "三" {
		t.Fatalf("入所者 want text, got %+v", s)
	}
	if !tbl.Get(1, "使用日").IsBlank() {
		t.Fatalf("missing cell must be blank")
	}
}

func TestRead_TwoRowHeader(t *testing.T) {
	t.Parallel()

	data := workbook(t, [][]interface{}{
		{"使用日", "仕入先", "人数", nil},
		{nil, nil, "入所者", "職員"},
		{"4/1", "A商店", 3, 1},
	})

	tbl, err := Read(bytes.NewReader(data), ReadOptions{HeaderRow: 1, HeaderDepth: 2})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{"使用日", "仕入先", "人数入所者", "職員"}
	for i, c := range want {
		if tbl.Columns[i] != c {
			t.Fatalf("column %d want=%q got=%q", i, c, tbl.Columns[i])
		}
	}
	if tbl.Len() != 1 {
		t.Fatalf("want 1 data row, got %d", tbl.Len())
	}
}

func TestRead_HeaderRowOutOfRange(t *testing.T) {
	t.Parallel()

	data := workbook(t, [][]interface{}{{"使用日"}, {"4/1"}})
	_, err := Read(bytes.NewReader(data), ReadOptions{HeaderRow: 5})
	if !errors.Is(err, ErrHeaderRow) {
		t.Fatalf("want ErrHeaderRow, got %v", err)
	}
}

func TestRead_NotASpreadsheet(t *testing.T) {
	t.Parallel()

	if _, err := Read(bytes.NewReader([]byte("not a workbook")), ReadOptions{HeaderRow: 1}); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}

func TestWrite_ReadBack(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	in := New([]string{"使用日", "仕入先", "入所者"})
	in.Append(Row{DateValue(day, ""), TextValue("A商店"), NumberValue(8, "")})
	in.Append(Row{Value{}, TextValue("B青果"), Value{}})

	out, err := Write(in)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(bytes.NewReader(out), ReadOptions{HeaderRow: 1})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("want 2 rows, got %d", back.Len())
	}
	if v := back.Get(0, "使用日"); v.Kind != Date || !v.Time.Equal(day) {
		t.Fatalf("date lost in round trip: %+v", v)
	}
	if v := back.Get(0, "入所者"); v.Kind != Number || v.Num != 8 {
		t.Fatalf("number lost in round trip: %+v", v)
	}
	if v := back.Get(1, "仕入先"); v.Text != "B青果" {
		t.Fatalf("text lost in round trip: %+v", v)
	}
}
