package render

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// A4 в нумерации excelize
const paperA4 = 9

// StyleSheet неизменяемые параметры оформления заказа. Передаётся
// в Renderer по значению; поля можно переопределить из TOML.
type StyleSheet struct {
	FontFamily  string  `toml:"font_family"`
	LeftSize    float64 `toml:"left_size"`
	CenterSize  float64 `toml:"center_size"`
	RightSize   float64 `toml:"right_size"`
	BodySize    float64 `toml:"body_size"`
	BorderColor string  `toml:"border_color"`
	Issuer      string  `toml:"issuer"`
	Honorific   string  `toml:"honorific"`

	HeaderHeights []float64 `toml:"header_heights"`
	RowHeight     float64   `toml:"row_height"`

	Orientation  string  `toml:"orientation"`
	PaperSize    int     `toml:"paper_size"`
	MarginLeft   float64 `toml:"margin_left"`
	MarginRight  float64 `toml:"margin_right"`
	MarginTop    float64 `toml:"margin_top"`
	MarginBottom float64 `toml:"margin_bottom"`

	DateFormat  string  `toml:"date_format"`
	MinColWidth float64 `toml:"min_col_width"`
	MaxColWidth float64 `toml:"max_col_width"`
}

func DefaultStyleSheet() StyleSheet {
	return StyleSheet{
		FontFamily:    "ＭＳ ゴシック",
		LeftSize:      28,
		CenterSize:    26,
		RightSize:     24,
		BodySize:      22,
		BorderColor:   "000000",
		Issuer:        "(有) ハートミール",
		Honorific:     "御中",
		HeaderHeights: []float64{40, 35, 35},
		RowHeight:     30,
		Orientation:   "landscape",
		PaperSize:     paperA4,
		MarginLeft:    0.3,
		MarginRight:   0.3,
		MarginTop:     0.5,
		MarginBottom:  0.5,
		DateFormat:    "yyyy/m/d",
		MinColWidth:   8,
		MaxColWidth:   40,
	}
}

// Validate проверяет значения после загрузки из файла
func (s StyleSheet) Validate() error {
	var errs []error
	if s.FontFamily == "" {
		errs = append(errs, errors.New("font_family is empty"))
	}
	for name, v := range map[string]float64{
		"left_size": s.LeftSize, "center_size": s.CenterSize, "right_size": s.RightSize,
		"body_size": s.BodySize, "row_height": s.RowHeight,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	if len(s.HeaderHeights) != 3 {
		errs = append(errs, fmt.Errorf("header_heights needs 3 values, got %d", len(s.HeaderHeights)))
	}
	if s.Orientation != "landscape" && s.Orientation != "portrait" {
		errs = append(errs, fmt.Errorf("orientation must be landscape or portrait, got %q", s.Orientation))
	}
	if s.MinColWidth > s.MaxColWidth {
		errs = append(errs, errors.New("min_col_width exceeds max_col_width"))
	}
	return errors.Join(errs...)
}

func (s StyleSheet) border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: s.BorderColor, Style: 1},
		{Type: "right", Color: s.BorderColor, Style: 1},
		{Type: "top", Color: s.BorderColor, Style: 1},
		{Type: "bottom", Color: s.BorderColor, Style: 1},
	}
}

// styleIDs стили, зарегистрированные в конкретной книге
type styleIDs struct {
	left, center, right int
	body, bodyDate      int
}

func (s StyleSheet) register(f *excelize.File) (styleIDs, error) {
	var ids styleIDs
	var err error

	header := func(size float64, horizontal, vertical string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Family: s.FontFamily, Size: size, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: horizontal, Vertical: vertical},
		})
	}
	if ids.left, err = header(s.LeftSize, "left", "bottom"); err != nil {
		return ids, err
	}
	if ids.center, err = header(s.CenterSize, "center", "center"); err != nil {
		return ids, err
	}
	if ids.right, err = header(s.RightSize, "right", "center"); err != nil {
		return ids, err
	}

	body := excelize.Style{
		Font:      &excelize.Font{Family: s.FontFamily, Size: s.BodySize},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    s.border(),
	}
	if ids.body, err = f.NewStyle(&body); err != nil {
		return ids, err
	}
	dateFmt := s.DateFormat
	body.CustomNumFmt = &dateFmt
	if ids.bodyDate, err = f.NewStyle(&body); err != nil {
		return ids, err
	}
	return ids, nil
}
