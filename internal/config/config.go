package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ModeProcess = "process"
	ModeOrders  = "orders"
	ModeServe   = "serve"
)

// DefaultFill колонки, которые по умолчанию заполняются вниз на шаге 1
var DefaultFill = []string{"納品日", "使用日", "朝昼夕", "仕入先"}

// FillOptions колонки, предлагаемые для заполнения на шаге 1
var FillOptions = []string{"納品日", "使用日", "朝昼夕", "仕入先", "食品名"}

type Config struct {
	Mode        string   `validate:"required,oneof=process orders serve"`
	InputPath   string   `validate:"required_unless=Mode serve"`
	OutputPath  string   // имя по умолчанию формируется с меткой времени
	HeaderRow   int      `validate:"min=1"`
	HeaderDepth int      `validate:"min=1,max=2"` // 2 - заголовок в две строки
	FillColumns []string `validate:"dive,required"`
	Facility    string   `validate:"required_if=Mode orders"`
	Addr        string   `validate:"required_if=Mode serve"`
	StylePath   string   // TOML с переопределением оформления
	LogLevel    string   `validate:"oneof=trace debug info warn warning error fatal panic"`
	MaxUploadMB int64    `validate:"min=1,max=512"`
}

var validate = validator.New()

// ParseFlags читает .env, затем флаги командной строки
func ParseFlags() (*Config, error) {
	return Parse(flag.CommandLine, os.Args[1:])
}

func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	var fill string

	fs.StringVar(&cfg.Mode, "mode", envOr("IWATO_MODE", ModeServe), "режим: process | orders | serve")
	fs.StringVar(&cfg.InputPath, "in", "", "входной файл .xlsx")
	fs.StringVar(&cfg.OutputPath, "out", "", "результирующий файл (по умолчанию имя с меткой времени)")
	fs.IntVar(&cfg.HeaderRow, "header-row", 1, "номер строки заголовка (с 1)")
	fs.IntVar(&cfg.HeaderDepth, "header-depth", 1, "количество строк заголовка (1 или 2)")
	fs.StringVar(&fill, "fill", strings.Join(DefaultFill, ","), "колонки для заполнения вниз, через запятую")
	fs.StringVar(&cfg.Facility, "facility", "", "учреждение: iwato | uhouse")
	fs.StringVar(&cfg.Addr, "addr", envOr("IWATO_ADDR", ":8080"), "адрес HTTP-сервера")
	fs.StringVar(&cfg.StylePath, "style", os.Getenv("IWATO_STYLE"), "TOML-файл оформления заказа")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("IWATO_LOG_LEVEL", "info"), "уровень логирования")
	fs.Int64Var(&cfg.MaxUploadMB, "max-upload-mb", envInt("IWATO_MAX_UPLOAD_MB", 20), "максимальный размер загружаемого файла, МБ")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.FillColumns = splitList(fill)

	if err := validate.Struct(cfg); err != nil {
		return nil, validationError(err)
	}

	// Нормализация путей
	if cfg.InputPath != "" {
		cfg.InputPath = filepath.Clean(cfg.InputPath)
	}
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	}
	if cfg.StylePath != "" {
		cfg.StylePath = filepath.Clean(cfg.StylePath)
	}

	return cfg, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ve.Field(), ve.Tag()))
	}
	return fmt.Errorf("некорректные параметры: %s", strings.Join(msgs, ", "))
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return def
}
