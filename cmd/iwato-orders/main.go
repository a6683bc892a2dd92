package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ryabkov82/iwato-orders/internal/config"
	"github.com/ryabkov82/iwato-orders/internal/facility"
	"github.com/ryabkov82/iwato-orders/internal/orders"
	"github.com/ryabkov82/iwato-orders/internal/server"
)

type Output struct {
	Success     bool     `json:"success"`
	OutputFiles []string `json:"output_files,omitempty"`
	Entries     []string `json:"entries,omitempty"`
	Error       string   `json:"error,omitempty"`
	Duration    string   `json:"duration"`
	RowCount    int64    `json:"row_count,omitempty"`
}

func main() {

	start := time.Now()

	cfg, err := config.ParseFlags()
	if err != nil {
		fail(start, fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	logg, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fail(start, fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	style, err := config.LoadStyle(cfg.StylePath)
	if err != nil {
		fail(start, fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	svc := orders.NewService(style, logg)

	if cfg.Mode == config.ModeServe {
		srv := server.New(svc, logg, cfg.MaxUploadBytes(), cfg.LogLevel == "debug" || cfg.LogLevel == "trace")
		logg.WithField("addr", cfg.Addr).Info("listening")
		if err := srv.Run(cfg.Addr); err != nil {
			logg.WithError(err).Fatal("server stopped")
		}
		return
	}

	res, err := run(cfg, svc)
	if err != nil {
		config.LogError(logg, "main", "run", cfg.Mode, logrus.Fields{"input": cfg.InputPath}, err)
		fail(start, err.Error())
	}

	out := cfg.OutputPath
	if out == "" {
		out = res.Name
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		fail(start, fmt.Sprintf("ошибка сохранения файла: %v", err))
	}

	emitJSON(Output{
		Success:     true,
		OutputFiles: []string{out},
		Entries:     res.Entries,
		RowCount:    int64(res.Rows),
		Duration:    time.Since(start).String(),
	})
}

func run(cfg *config.Config, svc *orders.Service) (*orders.Result, error) {
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", cfg.InputPath, err)
	}

	switch cfg.Mode {
	case config.ModeProcess:
		return svc.ProcessRaw(data, orders.ProcessOptions{
			HeaderRow:   cfg.HeaderRow,
			HeaderDepth: cfg.HeaderDepth,
			FillColumns: cfg.FillColumns,
		})
	case config.ModeOrders:
		p, err := facility.Lookup(cfg.Facility)
		if err != nil {
			return nil, err
		}
		return svc.BuildOrders(data, p)
	}
	return nil, fmt.Errorf("неизвестный режим %q", cfg.Mode)
}

func fail(start time.Time, msg string) {
	emitJSON(Output{
		Success:  false,
		Error:    msg,
		Duration: time.Since(start).String(),
	})
	os.Exit(1)
}

func emitJSON(out Output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
