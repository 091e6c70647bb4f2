// Package logging initializes the global zerolog logger with dual sinks.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init sets up the global logger: a console writer on stderr (colored only
// when attached to a terminal) and a rotating file under the logs directory.
// quiet raises the console threshold to warnings so progress-heavy commands
// stay readable.
func Init(verbose, quiet bool) {
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	var console io.Writer = consoleWriter
	if quiet {
		console = levelFilter{w: zerolog.MultiLevelWriter(consoleWriter), min: zerolog.WarnLevel}
	}

	logDir := os.Getenv("DASH_LOGS_FOLDER")
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		logDir = filepath.Join(home, ".local", "state", "dash")
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		// Console-only logging still works; say so once and move on.
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		log.Warn().Err(err).Str("path", logDir).Msg("log directory unavailable, console only")
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "dash.log"),
		MaxSize:    8, // megabytes
		MaxBackups: 4,
		MaxAge:     90, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(console, fileWriter)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
}

// levelFilter drops events below min from a single sink.
type levelFilter struct {
	w   zerolog.LevelWriter
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < f.min {
		return len(p), nil
	}
	return f.w.WriteLevel(l, p)
}
