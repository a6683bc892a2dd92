package table

// ForwardFill возвращает копию таблицы, в которой пустые ячейки
// перечисленных колонок заполнены ближайшим непустым значением выше.
// Так восстанавливаются значения объединённых ячеек исходного журнала.
// Отсутствующие колонки пропускаются; пустые ячейки в начале колонки
// остаются пустыми.
func ForwardFill(t *Table, columns []string) *Table {
	out := t.Clone()
	for _, name := range columns {
		for idx, c := range out.Columns {
			if c != name {
				continue
			}
			var last Value
			for _, row := range out.Rows {
				if row[idx].IsBlank() {
					row[idx] = last
					continue
				}
				last = row[idx]
			}
		}
	}
	return out
}
