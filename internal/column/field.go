package column

// Field каноническое поле журнала
type Field string

const (
	UsageDate     Field = "usage_date"
	Supplier      Field = "supplier"
	ItemName      Field = "item_name"
	Unit          Field = "unit"
	ResidentCount Field = "resident_count"
	StaffCount    Field = "staff_count"
	CoResident    Field = "co_resident_count"
	Remarks       Field = "remarks"
	DeliveryTime  Field = "delivery_time"
	Inspector     Field = "inspector"
	Freshness     Field = "freshness"
	Temperature   Field = "temperature"
	ForeignMatter Field = "foreign_matter"
	Packaging     Field = "packaging"
	Expiry        Field = "expiry"
)

var labels = map[Field]string{
	UsageDate:     "使用日",
	Supplier:      "仕入先",
	ItemName:      "食品名",
	Unit:          "単位",
	ResidentCount: "入所者",
	StaffCount:    "職員",
	CoResident:    "ユーハウス入所者",
	Remarks:       "備考欄",
	DeliveryTime:  "納品時間",
	Inspector:     "検収者",
	Freshness:     "鮮度",
	Temperature:   "品温",
	ForeignMatter: "異物",
	Packaging:     "包装",
	Expiry:        "期限",
}

// Label каноническое имя колонки в нормализованной таблице
func (f Field) Label() string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}

// Fields все канонические поля в порядке правил сопоставления
func Fields() []Field {
	out := make([]Field, len(rules))
	for i, r := range rules {
		out[i] = r.Field
	}
	return out
}
