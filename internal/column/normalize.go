package column

import (
	"errors"
	"fmt"

	"github.com/ryabkov82/iwato-orders/internal/table"
)

var ErrMissingSupplier = errors.New("「仕入先」列が見つかりません。ヘッダー行の指定を見直してください。")

// DuplicateFieldError две колонки исходной таблицы дают одно поле
type DuplicateFieldError struct {
	Field  Field
	First  string
	Second string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("列「%s」と「%s」がどちらも「%s」として認識されました。見出しを確認してください。",
		e.First, e.Second, e.Field.Label())
}

// Normalize переименовывает распознанные колонки в канонические подписи.
// Нераспознанные колонки остаются под очищенной подписью. Таблица без
// колонки 仕入先 отклоняется.
func Normalize(t *table.Table) (*table.Table, error) {
	cols := make([]string, len(t.Columns))
	seen := make(map[Field]string)

	for i, label := range t.Columns {
		field, ok := Canonical(label)
		if !ok {
			cols[i] = Clean(label)
			continue
		}
		if first, dup := seen[field]; dup {
			return nil, &DuplicateFieldError{Field: field, First: first, Second: label}
		}
		seen[field] = label
		cols[i] = field.Label()
	}

	if _, ok := seen[Supplier]; !ok {
		return nil, ErrMissingSupplier
	}

	out := t.Clone()
	out.Columns = cols
	return out, nil
}
