package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/iwato-orders/internal/aggregate"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/table"
)

const (
	// TableRow строка заголовка таблицы заказа, данные идут ниже
	TableRow = 6

	addresseeCell = "A3"
	addresseeEnd  = "B3"
	titleCell     = "B1"
	titleEnd      = "F1"
	issuerCell    = "M2"
	issuerEnd     = "O2"
)

// Renderer строит лист заказа для одного поставщика
type Renderer struct {
	style StyleSheet
}

func New(style StyleSheet) *Renderer {
	return &Renderer{style: style}
}

// Render возвращает xlsx с шапкой (строки 1-3) и таблицей с 6-й строки.
// Колонки таблицы строго в порядке профиля учреждения, отсутствующие
// значения выводятся пустыми ячейками.
func (r *Renderer) Render(g aggregate.Group, p facility.Profile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	ids, err := r.style.register(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стилей: %w", err)
	}

	cols := p.Columns()
	widths := make([]int, len(cols))
	var dateCells []string

	for c, field := range cols {
		ref, _ := excelize.CoordinatesToCellName(c+1, TableRow)
		if err := f.SetCellValue(sheet, ref, field.Label()); err != nil {
			return nil, err
		}
		widths[c] = table.DisplayWidth(field.Label())
	}
	for i, rec := range g.Records {
		row := TableRow + 1 + i
		for c, field := range cols {
			v := rec.Value(field)
			ref, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheet, ref, v.Cell()); err != nil {
				return nil, fmt.Errorf("ошибка записи ячейки %s: %w", ref, err)
			}
			if v.Kind == table.Date {
				dateCells = append(dateCells, ref)
			}
			if w := table.DisplayWidth(v.Text); w > widths[c] {
				widths[c] = w
			}
		}
	}

	lastRow := TableRow + len(g.Records)
	lastCell, _ := excelize.CoordinatesToCellName(len(cols), lastRow)
	firstCell, _ := excelize.CoordinatesToCellName(1, TableRow)
	if err := f.SetCellStyle(sheet, firstCell, lastCell, ids.body); err != nil {
		return nil, err
	}
	for _, ref := range dateCells {
		if err := f.SetCellStyle(sheet, ref, ref, ids.bodyDate); err != nil {
			return nil, err
		}
	}

	for c, w := range widths {
		name, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(sheet, name, name, r.colWidth(w)); err != nil {
			return nil, err
		}
	}

	if err := r.header(f, sheet, ids, g.Supplier, p.Label()); err != nil {
		return nil, err
	}

	for row := 1; row <= lastRow; row++ {
		if err := f.SetRowHeight(sheet, row, r.style.RowHeight); err != nil {
			return nil, err
		}
	}
	for i, h := range r.style.HeaderHeights {
		if err := f.SetRowHeight(sheet, i+1, h); err != nil {
			return nil, err
		}
	}

	if err := r.pageSetup(f, sheet); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(f *excelize.File, sheet string, ids styleIDs, supplier, label string) error {
	blocks := []struct {
		start, end string
		text       string
		style      int
	}{
		{addresseeCell, addresseeEnd, fmt.Sprintf("%s　%s", supplier, r.style.Honorific), ids.left},
		{titleCell, titleEnd, fmt.Sprintf("注文書（%s）", label), ids.center},
		{issuerCell, issuerEnd, r.style.Issuer, ids.right},
	}
	for _, b := range blocks {
		if err := f.MergeCell(sheet, b.start, b.end); err != nil {
			return fmt.Errorf("ошибка объединения %s:%s: %w", b.start, b.end, err)
		}
		if err := f.SetCellValue(sheet, b.start, b.text); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, b.start, b.end, b.style); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) pageSetup(f *excelize.File, sheet string) error {
	orientation := r.style.Orientation
	size := r.style.PaperSize
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
	}); err != nil {
		return fmt.Errorf("ошибка настройки страницы: %w", err)
	}
	left, right := r.style.MarginLeft, r.style.MarginRight
	top, bottom := r.style.MarginTop, r.style.MarginBottom
	return f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Left:   &left,
		Right:  &right,
		Top:    &top,
		Bottom: &bottom,
	})
}

// colWidth ширина колонки с поправкой на крупный шрифт тела таблицы
func (r *Renderer) colWidth(chars int) float64 {
	w := float64(chars)*r.style.BodySize/11 + 2
	if w < r.style.MinColWidth {
		w = r.style.MinColWidth
	}
	if w > r.style.MaxColWidth {
		w = r.style.MaxColWidth
	}
	return w
}
