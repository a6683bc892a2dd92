package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ryabkov82/iwato-orders/internal/render"
)

// LoadStyle возвращает оформление по умолчанию, поверх которого
// накладываются значения из TOML-файла, если он указан.
func LoadStyle(path string) (render.StyleSheet, error) {
	style := render.DefaultStyleSheet()
	if path == "" {
		return style, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("ошибка чтения файла оформления: %w", err)
	}
	if err := toml.Unmarshal(data, &style); err != nil {
		return style, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	if err := style.Validate(); err != nil {
		return style, fmt.Errorf("некорректное оформление в %s: %w", path, err)
	}
	return style, nil
}
