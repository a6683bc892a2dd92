package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var ErrDuplicateEntry = errors.New("archive: duplicate entry name")

// SafeName делает строку пригодной для имени файла: разделители путей
// заменяются на "_", управляющие символы удаляются. Пробелы по краям
// сохраняются, иначе "A商店" и "A商店 " дали бы одно имя.
func SafeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	if strings.TrimSpace(s) == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

// EntryName имя файла заказа внутри архива
func EntryName(supplier, tag string) string {
	return fmt.Sprintf("注文書_%s_%s.xlsx", SafeName(supplier), SafeName(tag))
}

// Builder собирает zip из именованных буферов
type Builder struct {
	buf      bytes.Buffer
	zw       *zip.Writer
	modified time.Time
	names    []string
	seen     map[string]struct{}
}

func NewBuilder(modified time.Time) *Builder {
	b := &Builder{modified: modified, seen: make(map[string]struct{})}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

// Add добавляет файл; повтор имени возвращает ErrDuplicateEntry
func (b *Builder) Add(name string, data []byte) error {
	if _, ok := b.seen[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: b.modified,
	})
	if err != nil {
		return fmt.Errorf("ошибка создания записи %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", name, err)
	}
	b.seen[name] = struct{}{}
	b.names = append(b.names, name)
	return nil
}

func (b *Builder) Names() []string {
	return append([]string(nil), b.names...)
}

// Bytes закрывает архив и возвращает его содержимое
func (b *Builder) Bytes() ([]byte, error) {
	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия архива: %w", err)
	}
	return b.buf.Bytes(), nil
}
