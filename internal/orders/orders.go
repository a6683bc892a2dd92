package orders

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ryabkov82/iwato-orders/internal/aggregate"
	"github.com/ryabkov82/iwato-orders/internal/archive"
	"github.com/ryabkov82/iwato-orders/internal/column"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/render"
	"github.com/ryabkov82/iwato-orders/internal/table"
)

const stampLayout = "20060102_150405"

// orderFill колонки, заполняемые вниз перед агрегацией
var orderFill = []column.Field{column.UsageDate, column.Supplier, column.ItemName}

// ProcessOptions параметры шага 1
type ProcessOptions struct {
	HeaderRow   int
	HeaderDepth int
	FillColumns []string
}

// Result готовый файл для выдачи пользователю
type Result struct {
	Name    string
	Data    []byte
	Rows    int
	Entries []string
}

// Service две операции инструмента: обработка журнала и сборка заказов
type Service struct {
	renderer *render.Renderer
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(style render.StyleSheet, log logrus.FieldLogger) *Service {
	return &Service{
		renderer: render.New(style),
		log:      log,
		now:      time.Now,
	}
}

// ProcessRaw шаг 1: читает журнал с заголовком в строке HeaderRow,
// заполняет вниз выбранные колонки и возвращает плоскую книгу.
func (s *Service) ProcessRaw(data []byte, opts ProcessOptions) (*Result, error) {
	t, err := table.Read(bytes.NewReader(data), table.ReadOptions{
		HeaderRow:   opts.HeaderRow,
		HeaderDepth: opts.HeaderDepth,
	})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	targets := resolveFill(t, opts.FillColumns)
	filled := table.ForwardFill(t, targets)

	out, err := table.Write(filled)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи результата: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"rows":    filled.Len(),
		"columns": len(filled.Columns),
		"filled":  targets,
	}).Info("raw log processed")

	return &Result{
		Name: fmt.Sprintf("検収簿_加工済_空欄補完済み_%s.xlsx", s.now().Format(stampLayout)),
		Data: out,
		Rows: filled.Len(),
	}, nil
}

// resolveFill сопоставляет запрошенные имена с колонками таблицы:
// сначала точное совпадение, иначе колонки, содержащие имя
// (например 使用日 -> 使用日(月/日)).
func resolveFill(t *table.Table, names []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, name := range names {
		if t.Has(name) {
			add(name)
			continue
		}
		for _, c := range t.Columns {
			if c != "" && strings.Contains(c, name) {
				add(c)
			}
		}
	}
	return out
}

// BuildOrders шаг 2: по обработанной книге строит zip с заказом на
// каждого поставщика. При ошибке ничего не возвращается.
func (s *Service) BuildOrders(data []byte, p facility.Profile) (*Result, error) {
	t, err := table.Read(bytes.NewReader(data), table.ReadOptions{HeaderRow: 1, HeaderDepth: 1})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	t, err = column.Normalize(t)
	if err != nil {
		var dup *column.DuplicateFieldError
		if errors.Is(err, column.ErrMissingSupplier) || errors.As(err, &dup) {
			return nil, &ConfigError{Err: err}
		}
		return nil, err
	}

	fill := make([]string, len(orderFill))
	for i, f := range orderFill {
		fill[i] = f.Label()
	}
	t = table.ForwardFill(t, fill)

	groups, err := aggregate.BySupplier(t, p, s.log.WithField("facility", p.Key()))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	now := s.now()
	zb := archive.NewBuilder(now)
	rows := 0
	for _, g := range groups {
		sheet, err := s.renderer.Render(g, p)
		if err != nil {
			return nil, fmt.Errorf("ошибка формирования заказа для %s: %w", g.Supplier, err)
		}
		name := archive.EntryName(g.Supplier, p.Tag())
		if err := zb.Add(name, sheet); err != nil {
			if errors.Is(err, archive.ErrDuplicateEntry) {
				return nil, &ConfigError{Err: fmt.Errorf("仕入先名「%s」のファイル名が他の仕入先と重複します: %w", g.Supplier, err)}
			}
			return nil, err
		}
		rows += len(g.Records)
	}

	out, err := zb.Bytes()
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"facility":  p.Key(),
		"suppliers": len(groups),
		"rows":      rows,
	}).Info("purchase orders built")

	return &Result{
		Name:    fmt.Sprintf("注文書_%s_%s.zip", p.Tag(), now.Format(stampLayout)),
		Data:    out,
		Rows:    rows,
		Entries: zb.Names(),
	}, nil
}
