package app

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	log "github.com/go-pkgz/lgr"
	"github.com/muesli/termenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/khrees2412/jobtrack/internal/config"
)

// SetupLogs routes diagnostics to the rotated log file when configured.
// Without a log file they are dropped unless debug is on, which writes to stderr.
func SetupLogs(cfg *config.Config) {
	out := logWriter(cfg)
	if out == nil {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
		return
	}
	if cfg.Debug {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg)
		return
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
}

func logWriter(cfg *config.Config) io.Writer {
	if cfg.LogFile != "" {
		return &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			Compress:   false,
		}
	}
	if cfg.Debug {
		return os.Stderr
	}
	return nil
}

func setupColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
