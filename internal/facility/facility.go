package facility

import (
	"fmt"
	"strings"

	"github.com/ryabkov82/iwato-orders/internal/column"
)

// Profile настройки учреждения: какие количества суммировать, порядок колонок
// заказа и подпись в шапке. Значение неизменяемо, срезы отдаются копиями.
type Profile struct {
	key        string
	tag        string
	label      string
	quantities []column.Field
	columns    []column.Field
}

var (
	Iwato = Profile{
		key:        "iwato",
		tag:        "いわと",
		label:      "介護老人福祉施設いわと",
		quantities: []column.Field{column.ResidentCount, column.StaffCount},
		columns: []column.Field{
			column.UsageDate, column.ItemName, column.ResidentCount, column.Unit, column.StaffCount,
			column.Freshness, column.Temperature, column.ForeignMatter, column.Packaging, column.Expiry,
			column.Remarks, column.DeliveryTime, column.Inspector,
		},
	}
	UHouse = Profile{
		key:        "uhouse",
		tag:        "ユーハウス",
		label:      "ユーハウスいわと",
		quantities: []column.Field{column.CoResident},
		columns: []column.Field{
			column.UsageDate, column.ItemName, column.CoResident, column.Unit,
			column.Freshness, column.Temperature, column.ForeignMatter, column.Packaging, column.Expiry,
			column.Remarks, column.DeliveryTime, column.Inspector,
		},
	}
)

// groupKeys ключ группировки строк внутри поставщика
var groupKeys = []column.Field{column.UsageDate, column.ItemName, column.Unit}

func All() []Profile {
	return []Profile{Iwato, UHouse}
}

// Lookup принимает ключ (iwato, uhouse) или тег (いわと, ユーハウス)
func Lookup(s string) (Profile, error) {
	s = strings.TrimSpace(s)
	for _, p := range All() {
		if strings.EqualFold(s, p.key) || s == p.tag {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("不明な施設です: %q (iwato / uhouse)", s)
}

func (p Profile) Key() string   { return p.key }
func (p Profile) Tag() string   { return p.tag }
func (p Profile) Label() string { return p.label }

func (p Profile) Quantities() []column.Field {
	return append([]column.Field(nil), p.quantities...)
}

func (p Profile) Columns() []column.Field {
	return append([]column.Field(nil), p.columns...)
}

func (p Profile) GroupKeys() []column.Field {
	return append([]column.Field(nil), groupKeys...)
}
