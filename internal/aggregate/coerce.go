package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"

	"github.com/ryabkov82/iwato-orders/internal/table"
)

// Coerce приводит значение ячейки к числу. Пустая ячейка даёт ноль и ok.
// Нечисловое значение тоже даёт ноль, но ok=false: вызывающий код
// логирует такую подстановку.
func Coerce(v table.Value) (decimal.Decimal, bool) {
	switch v.Kind {
	case table.Empty:
		return decimal.Zero, true
	case table.Number:
		return decimal.NewFromFloat(v.Num), true
	case table.Text:
		s := width.Narrow.String(strings.TrimSpace(v.Text))
		if s == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}
