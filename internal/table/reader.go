package table

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheet   = errors.New("シートがありません")
	ErrHeaderRow = errors.New("ヘッダー行がデータの範囲外です")
)

// ReadOptions параметры чтения журнала
type ReadOptions struct {
	HeaderRow   int // 1-based
	HeaderDepth int // 1 или 2 строки заголовка
}

// Read читает первый лист книги в таблицу. Заголовок берётся из строки
// HeaderRow (при HeaderDepth=2 склеивается со следующей строкой), данные
// начинаются сразу под ним. Полностью пустые строки пропускаются.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ファイルを開けません: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	sr := newSheetReader(f, sheets[0])

	rows, err := f.GetRows(sr.sheet)
	if err != nil {
		return nil, fmt.Errorf("行の読み込みに失敗しました: %w", err)
	}

	hdr := opts.HeaderRow - 1
	if hdr < 0 || hdr >= len(rows) {
		return nil, fmt.Errorf("%w: %d行目 (全%d行)", ErrHeaderRow, opts.HeaderRow, len(rows))
	}
	depth := opts.HeaderDepth
	if depth < 1 {
		depth = 1
	}
	if hdr+depth > len(rows) {
		depth = len(rows) - hdr
	}

	ncols := 0
	for _, row := range rows[hdr:] {
		if len(row) > ncols {
			ncols = len(row)
		}
	}

	t := New(headerLabels(rows[hdr:hdr+depth], ncols))

	for i := hdr + depth; i < len(rows); i++ {
		row := make(Row, ncols)
		blank := true
		for j, text := range rows[i] {
			v, err := sr.value(j+1, i+1, text)
			if err != nil {
				return nil, err
			}
			row[j] = v
			if !v.IsBlank() {
				blank = false
			}
		}
		if blank {
			continue
		}
		t.Append(row)
	}
	return t, nil
}

// headerLabels склеивает строки заголовка по колонкам, убирая переводы строк
func headerLabels(header [][]string, ncols int) []string {
	labels := make([]string, ncols)
	for j := 0; j < ncols; j++ {
		var sb strings.Builder
		for _, row := range header {
			if j < len(row) {
				sb.WriteString(strings.TrimSpace(row[j]))
			}
		}
		label := strings.ReplaceAll(sb.String(), "\r", "")
		labels[j] = strings.TrimSpace(strings.ReplaceAll(label, "\n", ""))
	}
	return labels
}

type sheetReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	classes  map[int]numClass
}

func newSheetReader(f *excelize.File, sheet string) *sheetReader {
	sr := &sheetReader{f: f, sheet: sheet, classes: make(map[int]numClass)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sr.date1904 = *props.Date1904
	}
	return sr
}

// value определяет тип ячейки по её типу и числовому формату стиля
func (sr *sheetReader) value(col, row int, text string) (Value, error) {
	if strings.TrimSpace(text) == "" {
		return Value{}, nil
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, err
	}

	typ, _ := sr.f.GetCellType(sr.sheet, ref)
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
	case excelize.CellTypeDate:
		raw, _ := sr.f.GetCellValue(sr.sheet, ref, excelize.Options{RawCellValue: true})
		if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return DateValue(t, text), nil
		}
		return TextValue(text), nil
	default:
		return TextValue(text), nil
	}

	raw, err := sr.f.GetCellValue(sr.sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return TextValue(text), nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return TextValue(text), nil
	}

	switch sr.class(ref) {
	case classDate:
		t, err := excelize.ExcelDateToTime(n, sr.date1904)
		if err != nil {
			return TextValue(text), nil
		}
		return DateValue(t, text), nil
	case classTime:
		// время доставки и т.п. оставляем как отображаемый текст
		return TextValue(text), nil
	}
	return NumberValue(n, text), nil
}

func (sr *sheetReader) class(ref string) numClass {
	styleID, err := sr.f.GetCellStyle(sr.sheet, ref)
	if err != nil {
		return classNumber
	}
	if c, ok := sr.classes[styleID]; ok {
		return c
	}
	c := classNumber
	if style, err := sr.f.GetStyle(styleID); err == nil {
		c = classify(style.NumFmt, style.CustomNumFmt)
	}
	sr.classes[styleID] = c
	return c
}
