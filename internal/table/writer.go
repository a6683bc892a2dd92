package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Sheet1"
	minColWidth = 8
	maxColWidth = 50
)

// colWidths ширины колонок по содержимому
type colWidths map[int]int

func (w colWidths) observe(col int, s string) {
	if n := DisplayWidth(s); n > w[col] {
		w[col] = n
	}
}

func (w colWidths) width(col int) float64 {
	n := w[col] + 2
	if n < minColWidth {
		n = minColWidth
	}
	if n > maxColWidth {
		n = maxColWidth
	}
	return float64(n)
}

// Write сериализует таблицу в xlsx: строка заголовка, сразу под ней данные.
func Write(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля заголовка: %w", err)
	}
	dateFmt := "yyyy/m/d"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля даты: %w", err)
	}

	widths := make(colWidths)
	for i, c := range t.Columns {
		widths.observe(i, c)
	}
	for _, row := range t.Rows {
		for i, v := range row {
			widths.observe(i, v.Text)
		}
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания StreamWriter: %w", err)
	}
	for i := range t.Columns {
		if err := sw.SetColWidth(i+1, i+1, widths.width(i)); err != nil {
			return nil, err
		}
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = excelize.Cell{Value: c, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовков: %w", err)
	}

	for r, row := range t.Rows {
		data := make([]interface{}, len(row))
		for i, v := range row {
			cell := excelize.Cell{Value: v.Cell()}
			if v.Kind == Date {
				cell.StyleID = dateStyle
			}
			data[i] = cell
		}
		ref, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(ref, data); err != nil {
			return nil, fmt.Errorf("ошибка записи строки %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("ошибка финального flush: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	return buf.Bytes(), nil
}
