package table

// Row значения строки, выровненные по Table.Columns
type Row []Value

// Table упорядоченный набор строк с общим списком колонок
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Index возвращает индекс первой колонки с таким именем или -1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Append добавляет строку, дополняя или обрезая её до ширины таблицы
func (t *Table) Append(r Row) {
	row := make(Row, len(t.Columns))
	copy(row, r)
	t.Rows = append(t.Rows, row)
}

// Get значение колонки name в строке i; пустое значение, если колонки нет
func (t *Table) Get(i int, name string) Value {
	idx := t.Index(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return Value{}
	}
	return t.Rows[i][idx]
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Clone() *Table {
	c := New(t.Columns)
	c.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		row := make(Row, len(r))
		copy(row, r)
		c.Rows[i] = row
	}
	return c
}
