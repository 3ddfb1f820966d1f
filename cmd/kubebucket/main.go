package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ThanhChinhBK/kubebucket/help"
	"github.com/ThanhChinhBK/kubebucket/internal/app"
	"github.com/ThanhChinhBK/kubebucket/internal/catalog"
	"github.com/ThanhChinhBK/kubebucket/internal/config"
	"github.com/ThanhChinhBK/kubebucket/internal/domain"
	"github.com/ThanhChinhBK/kubebucket/internal/game"
	"github.com/ThanhChinhBK/kubebucket/internal/infrastructure/memory"
	"github.com/ThanhChinhBK/kubebucket/internal/infrastructure/scoredb"
	"github.com/ThanhChinhBK/kubebucket/internal/infrastructure/scorefile"
)

func main() {
	var (
		configPath  string
		catalogPath string
		storeKind   string
		scoresPath  string
		seed        int64
		logPath     string
		logLevel    string
	)
	flag.StringVar(&configPath, "config", "", "tuning file (yaml)")
	flag.StringVar(&catalogPath, "catalog", "", "piece catalog file (yaml manifests)")
	flag.StringVar(&storeKind, "store", "sqlite", "score store backend: sqlite, file or memory")
	flag.StringVar(&scoresPath, "scores", "", "score store location, defaults under ~/.kubebucket")
	flag.Int64Var(&seed, "seed", 0, "rng seed, 0 picks one from the clock")
	flag.StringVar(&logPath, "log", "", "append logs to this file, empty discards them")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, closeLog, err := newLogger(logPath, logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	cat := game.DefaultCatalog()
	if catalogPath != "" {
		if cat, err = catalog.Load(catalogPath); err != nil {
			log.Fatal(err)
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := game.New(cfg.Rules(), cat, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatal(err)
	}

	store, err := openStore(storeKind, scoresPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	logger.Info("kubebucket starting", "seed", seed, "store", storeKind)

	m := app.New(cfg, g, store, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

func openStore(kind, path string) (domain.ScoreStore, error) {
	switch kind {
	case "memory":
		return memory.New(), nil
	case "file":
		if path == "" {
			path = filepath.Join(help.DataDir(), "scores.json")
		}
		return scorefile.New(path), nil
	case "sqlite":
		if path == "" {
			path = filepath.Join(help.DataDir(), "scores.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		return scoredb.Open(path)
	}
	return nil, fmt.Errorf("unknown store backend %q", kind)
}

// newLogger builds the logger the TUI writes through. The alt screen owns
// the terminal, so logs only go to a file the user asked for.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { f.Close() }, nil
}
