package table

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Kind тип значения ячейки
type Kind int

const (
	Empty Kind = iota
	Text
	Number
	Date
)

// Value скалярное значение ячейки. Text хранит отображаемый текст
// в том виде, в каком он был в исходной книге.
type Value struct {
	Kind Kind
	Text string
	Num  float64
	Time time.Time
}

func TextValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{Kind: Text, Text: s}
}

// NumberValue создаёт числовое значение; пустой text заменяется
// каноническим представлением числа.
func NumberValue(n float64, text string) Value {
	if text == "" {
		text = strconv.FormatFloat(n, 'f', -1, 64)
	}
	return Value{Kind: Number, Num: n, Text: text}
}

func DateValue(t time.Time, text string) Value {
	if text == "" {
		text = t.Format("2006/1/2")
	}
	return Value{Kind: Date, Time: t, Text: text}
}

func (v Value) IsBlank() bool {
	return v.Kind == Empty || (v.Kind == Text && strings.TrimSpace(v.Text) == "")
}

// Cell значение для записи через excelize
func (v Value) Cell() interface{} {
	switch v.Kind {
	case Number:
		return v.Num
	case Date:
		return v.Time
	case Text:
		return v.Text
	}
	return nil
}

// DisplayWidth ширина строки в символах моноширинного шрифта:
// широкие восточноазиатские символы считаются за два.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
