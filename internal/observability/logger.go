package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tbourn/go-workout-backend/internal/config"
	"github.com/tbourn/go-workout-backend/internal/sysutil"
)

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

// SetupLogger configures the zerolog global logger: level, console or JSON
// output, and an optional rotating file. The returned closer flushes the
// file and is a no-op without one.
func SetupLogger(cfg config.LogConfig, service string) (io.Closer, zerolog.Logger) {
	sysutil.SetLogLevel(cfg.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var console io.Writer = stdout
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC3339}
	}

	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	log.Logger = logger
	return closer, logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
