package aggregate

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ryabkov82/iwato-orders/internal/column"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/table"
)

var ErrNoSupplier = errors.New("aggregate: table has no supplier column")

// Record одна строка заказа: значения ключа и суммы количеств
type Record struct {
	Keys       map[column.Field]table.Value
	Quantities map[column.Field]decimal.Decimal
}

// Value значение поля для вывода; отсутствующие поля пустые
func (r Record) Value(f column.Field) table.Value {
	if q, ok := r.Quantities[f]; ok {
		return table.NumberValue(q.InexactFloat64(), q.String())
	}
	return r.Keys[f]
}

// Group строки одного поставщика после агрегации
type Group struct {
	Supplier string
	Records  []Record
}

// Total сумма поля по всем строкам группы
func (g Group) Total(f column.Field) decimal.Decimal {
	total := decimal.Zero
	for _, r := range g.Records {
		if q, ok := r.Quantities[f]; ok {
			total = total.Add(q)
		}
	}
	return total
}

type partition struct {
	group   Group
	records map[string]int
}

// BySupplier делит строки по поставщику (точное совпадение, порядок
// первого появления), внутри поставщика группирует по присутствующим
// колонкам из (使用日, 食品名, 単位) и суммирует количества учреждения.
// Строки с пустым поставщиком отбрасываются; строки с пустым ключом
// образуют свою группу, поэтому суммы сохраняются.
func BySupplier(t *table.Table, p facility.Profile, log logrus.FieldLogger) ([]Group, error) {
	supIdx := t.Index(column.Supplier.Label())
	if supIdx < 0 {
		return nil, ErrNoSupplier
	}

	type keyCol struct {
		field column.Field
		idx   int
	}
	var keys []keyCol
	for _, f := range p.GroupKeys() {
		if idx := t.Index(f.Label()); idx >= 0 {
			keys = append(keys, keyCol{f, idx})
		}
	}
	quantities := p.Quantities()
	qIdx := make([]int, len(quantities))
	for i, q := range quantities {
		qIdx[i] = t.Index(q.Label())
	}

	var order []string
	parts := make(map[string]*partition)

	for i, row := range t.Rows {
		sv := row[supIdx]
		if sv.IsBlank() {
			continue
		}
		supplier := sv.Text

		part, ok := parts[supplier]
		if !ok {
			part = &partition{group: Group{Supplier: supplier}, records: make(map[string]int)}
			parts[supplier] = part
			order = append(order, supplier)
		}

		var sb strings.Builder
		for _, k := range keys {
			sb.WriteString(row[k.idx].Text)
			sb.WriteByte(0)
		}
		key := sb.String()

		ri, ok := part.records[key]
		if !ok {
			rec := Record{
				Keys:       make(map[column.Field]table.Value, len(keys)),
				Quantities: make(map[column.Field]decimal.Decimal, len(quantities)),
			}
			for _, k := range keys {
				rec.Keys[k.field] = row[k.idx]
			}
			for _, q := range quantities {
				rec.Quantities[q] = decimal.Zero
			}
			part.group.Records = append(part.group.Records, rec)
			ri = len(part.group.Records) - 1
			part.records[key] = ri
		}

		rec := part.group.Records[ri]
		for j, q := range quantities {
			if qIdx[j] < 0 {
				continue
			}
			v := row[qIdx[j]]
			d, ok := Coerce(v)
			if !ok {
				log.WithFields(logrus.Fields{
					"supplier": supplier,
					"column":   q.Label(),
					"row":      i + 1,
					"value":    v.Text,
				}).Warn("non-numeric quantity replaced with zero")
			}
			rec.Quantities[q] = rec.Quantities[q].Add(d)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, s := range order {
		groups = append(groups, parts[s].group)
	}
	return groups, nil
}
