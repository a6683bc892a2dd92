package orders

import (
	"errors"
	"fmt"
)

// ConfigError входной файл не соответствует ожидаемой структуре
// (нет колонки 仕入先, колонки дублируются). Показывается пользователю
// как есть.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError файл не читается как книга или строка заголовка вне диапазона
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("ファイルを読み込めません: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// IsUserError ошибка во входных данных, а не во внутренней логике
func IsUserError(err error) bool {
	var ce *ConfigError
	var pe *ParseError
	return errors.As(err, &ce) || errors.As(err, &pe)
}
