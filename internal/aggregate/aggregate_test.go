package aggregate

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ryabkov82/iwato-orders/internal/column"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/table"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func txt(s string) table.Value { return table.TextValue(s) }
func num(n float64) table.Value { return table.NumberValue(n, "") }

func TestBySupplier_SumsWithinKey(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"使用日", "仕入先", "食品名", "単位", "入所者"})
	tbl.Append(table.Row{txt("2024-04-01"), txt("A"), txt("Rice"), txt("kg"), num(5)})
	tbl.Append(table.Row{txt("2024-04-01"), txt("A"), txt("Rice"), txt("kg"), num(3)})

	groups, err := BySupplier(tbl, facility.Iwato, quietLogger())
	if err != nil {
		t.Fatalf("BySupplier: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Records) != 1 {
		t.Fatalf("want one group with one record, got %+v", groups)
	}
	rec := groups[0].Records[0]
	if got := rec.Quantities[column.ResidentCount]; !got.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("入所者 want=8 got=%s", got)
	}
	if got := rec.Quantities[column.StaffCount]; !got.IsZero() {
		t.Fatalf("absent 職員 must sum to zero, got %s", got)
	}
	if v := rec.Value(column.ItemName); v.Text != "Rice" {
		t.Fatalf("key value lost: %+v", v)
	}
	if v := rec.Value(column.Remarks); !v.IsBlank() {
		t.Fatalf("non-key columns must render blank, got %+v", v)
	}
}

func TestBySupplier_PartitionAndOrder(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"使用日", "仕入先", "食品名", "単位", "入所者", "職員"})
	tbl.Append(table.Row{txt("4/1"), txt("B青果"), txt("人参"), txt("kg"), num(2), num(1)})
	tbl.Append(table.Row{txt("4/1"), txt("A商店"), txt("米"), txt("kg"), num(4), num(1)})
	tbl.Append(table.Row{txt("4/1"), txt(" "), txt("米"), txt("kg"), num(100), num(100)})
	tbl.Append(table.Row{txt("4/2"), txt("B青果"), txt("人参"), txt("kg"), num(3), txt("abc")})
	tbl.Append(table.Row{txt("4/1"), txt("b青果"), txt("人参"), txt("kg"), num(1), num(0)})
	tbl.Append(table.Row{txt("4/1"), txt("B青果"), table.Value{}, txt("kg"), txt("２"), num(1)})

	log, hook := test.NewNullLogger()
	groups, err := BySupplier(tbl, facility.Iwato, log)
	if err != nil {
		t.Fatalf("BySupplier: %v", err)
	}

	want := []string{"B青果", "A商店", "b青果"}
	if len(groups) != len(want) {
		t.Fatalf("want %d groups, got %d", len(want), len(groups))
	}
	for i, s := range want {
		if groups[i].Supplier != s {
			t.Fatalf("group %d want=%q got=%q", i, s, groups[i].Supplier)
		}
	}

	b := groups[0]
	if len(b.Records) != 3 {
		t.Fatalf("B青果 want 3 records (4/1, 4/2, blank item), got %d", len(b.Records))
	}
	if got := b.Total(column.ResidentCount); !got.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("B青果 入所者 total want=7 got=%s", got)
	}
	if got := b.Total(column.StaffCount); !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("B青果 職員 total want=2 got=%s", got)
	}

	if len(hook.AllEntries()) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("want one warning for the non-numeric value, got %d entries", len(hook.AllEntries()))
	}
}

func TestBySupplier_MassConservation(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"使用日", "仕入先", "食品名", "単位", "ユーハウス入所者"})
	suppliers := []string{"A", "B", "C"}
	items := []string{"米", "味噌", "豆腐", "卵"}
	inputTotals := make(map[string]decimal.Decimal)
	for i := 0; i < 60; i++ {
		s := suppliers[i%len(suppliers)]
		q := float64(i%7) + 0.5
		tbl.Append(table.Row{txt("4/" + string(rune('1'+i%3))), txt(s), txt(items[i%len(items)]), txt("個"), num(q)})
		inputTotals[s] = inputTotals[s].Add(decimal.NewFromFloat(q))
	}

	groups, err := BySupplier(tbl, facility.UHouse, quietLogger())
	if err != nil {
		t.Fatalf("BySupplier: %v", err)
	}
	if len(groups) != len(suppliers) {
		t.Fatalf("want %d groups, got %d", len(suppliers), len(groups))
	}
	for _, g := range groups {
		if got, want := g.Total(column.CoResident), inputTotals[g.Supplier]; !got.Equal(want) {
			t.Fatalf("%s total want=%s got=%s", g.Supplier, want, got)
		}
		if len(g.Records) >= 20 {
			t.Fatalf("%s: rows were not grouped (%d records)", g.Supplier, len(g.Records))
		}
	}
}

func TestBySupplier_NoSupplierColumn(t *testing.T) {
	t.Parallel()

	if _, err := BySupplier(table.New([]string{"使用日"}), facility.Iwato, quietLogger()); err != ErrNoSupplier {
		t.Fatalf("want ErrNoSupplier, got %v", err)
	}
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     table.Value
		want   string
		wantOK bool
	}{
		{table.Value{}, "0", true},
		{num(2.5), "2.5", true},
		{txt(" 12 "), "12", true},
		{txt("１２"), "12", true},
		{txt("1,200"), "1200", true},
		{txt("少々"), "0", false},
		{table.DateValue(table.Value{}.Time, "x"), "0", false},
	}
	for _, tc := range cases {
		got, ok := Coerce(tc.in)
		if got.String() != tc.want || ok != tc.wantOK {
			t.Fatalf("Coerce(%+v) want=(%s,%v) got=(%s,%v)", tc.in, tc.want, tc.wantOK, got, ok)
		}
	}
}
