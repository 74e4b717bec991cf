package main

import (
	"context"
	"fmt"
	"os"

	"seatmap/config"
	"seatmap/internal/catalog"
	"seatmap/internal/database"
	"seatmap/internal/pricing"
	"seatmap/internal/render"
	"seatmap/internal/service"
	"seatmap/internal/storage"
	"seatmap/internal/tui"
	"seatmap/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// 本機只有一位使用者
const localSession = "local"

func main() {
	var (
		catalogPath = flag.String("catalog", "", "venue file (.json, .jsonc, .yaml); empty uses the built-in venue")
		dbPath      = flag.String("db", "seatmap.db", "SQLite file that keeps the selection between runs")
		pxPerCol    = flag.Int("width-px-per-col", tui.DefaultPxPerCol, "map pixels represented by one terminal column")
		logFile     = flag.String("log-file", "seatmap-tui.log", "log output path")
		logLevel    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	if err := run(*catalogPath, *dbPath, *pxPerCol, *logFile, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "seatmap-tui:", err)
		os.Exit(1)
	}
}

func run(catalogPath, dbPath string, pxPerCol int, logFile, logLevel string) error {
	// TUI 佔用 stdout，log 改寫到檔案
	if err := logger.RedirectTo(logFile); err != nil {
		return err
	}
	logger.SetLevel(logLevel)
	defer func() { _ = logger.L.Sync() }()
	log := logger.WithComponent("tui")

	ctx := context.Background()

	source := config.CatalogConfig{Source: config.CatalogSourceEmbedded}
	if catalogPath != "" {
		source = config.CatalogConfig{Source: config.CatalogSourceFile, Path: catalogPath}
	}
	cat, err := catalog.Open(ctx, source, nil)
	if err != nil {
		return err
	}

	db, err := database.InitSQLite(&config.SQLiteConfig{Path: dbPath})
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := storage.NewSQLiteStore(ctx, db)
	if err != nil {
		return err
	}

	prices := pricing.DefaultTable()
	svc := service.NewSeatMapService(cat, prices, render.NewComposer(render.DefaultBreakpoint, prices), store)

	log.Info("Starting", zap.String("venue_id", cat.Venue().VenueID), zap.String("db", dbPath))
	program := tea.NewProgram(tui.New(svc, localSession, pxPerCol), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}
