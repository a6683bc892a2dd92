package column

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Rule сопоставляет очищенную подпись колонки с каноническим полем
type Rule struct {
	Field Field
	Match func(label string) bool
}

func contains(markers ...string) func(string) bool {
	return func(label string) bool {
		for _, m := range markers {
			if !strings.Contains(label, m) {
				return false
			}
		}
		return true
	}
}

func containsExcept(marker, except string) func(string) bool {
	return func(label string) bool {
		return strings.Contains(label, marker) && !strings.Contains(label, except)
	}
}

// Порядок важен: побеждает первое совпадение. Пункты проверки стоят
// раньше 検収, потому что под двухстрочной шапкой их подписи получают
// префикс группы (検収鮮度, 検収品温); 検収 в свою очередь раньше
// 納品時間 и 備考.
var rules = []Rule{
	{Expiry, contains("期限")},
	{Packaging, contains("包装")},
	{ForeignMatter, contains("異物")},
	{Temperature, contains("品温")},
	{Freshness, contains("鮮度")},
	{Inspector, contains("検収")},
	{DeliveryTime, contains("納品時間")},
	{Remarks, contains("備考")},
	{CoResident, contains("ユ", "入所者")},
	{StaffCount, contains("職員")},
	{ResidentCount, contains("入所者")},
	{Unit, containsExcept("単位", "ユニ")},
	{ItemName, contains("食品名")},
	{Supplier, contains("仕入先")},
	{UsageDate, contains("使用日")},
}

// Rules копия упорядоченного списка правил
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Clean убирает все пробельные символы (включая U+3000 и переводы строк)
// и приводит ширину символов: полуширинная катакана становится
// полноширинной, полноширинная латиница и цифры узкими.
func Clean(label string) string {
	label = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, label)
	return width.Fold.String(label)
}

// Canonical возвращает поле для подписи колонки
func Canonical(label string) (Field, bool) {
	cleaned := Clean(label)
	if cleaned == "" {
		return "", false
	}
	for _, r := range rules {
		if r.Match(cleaned) {
			return r.Field, true
		}
	}
	return "", false
}
