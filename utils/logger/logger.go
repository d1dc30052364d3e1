package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/datazip-inc/tap-persona/constants"
)

var logger zerolog.Logger

// protocol messages must stay machine readable; operator logs go to stderr
// and the rolling file sink, JSON lines go to stdout untouched.
var protocolWriter io.Writer = os.Stdout

func init() {
	// usable before Init for early failures; Init attaches the file sink
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// Init wires the console and rolling-file sinks. It reads CONFIG_FOLDER
// from viper, so the root command must resolve paths first.
func Init() {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}

	if folder := viper.GetString(constants.ConfigFolder); folder != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(folder, "logs", "tap-persona.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		})
	}

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("TAP_LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
}

func Info(v ...interface{}) {
	logger.Info().Msg(fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

func Debug(v ...interface{}) {
	logger.Debug().Msg(fmt.Sprint(v...))
}

func Debugf(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

func Warn(v ...interface{}) {
	logger.Warn().Msg(fmt.Sprint(v...))
}

func Warnf(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}

func Error(v ...interface{}) {
	logger.Error().Msg(fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}

func Fatal(v ...interface{}) {
	logger.Fatal().Msg(fmt.Sprint(v...))
}

func Fatalf(format string, v ...interface{}) {
	logger.Fatal().Msgf(format, v...)
}

// LogMessage writes a protocol message as a single JSON line on stdout.
func LogMessage(message any) {
	raw, err := json.Marshal(message)
	if err != nil {
		Fatalf("failed to marshal protocol message: %s", err)
	}
	fmt.Fprintln(protocolWriter, string(raw))
}

// LogState checkpoints the replication state: one STATE message on stdout
// and a refresh of the state file for the next run.
func LogState(state any) {
	LogMessage(map[string]any{
		"type":  "STATE",
		"state": state,
	})

	if path := viper.GetString(constants.StatePath); path != "" {
		FileLoggerWithPath(state, path)
	}
}

// FileLogger dumps content as JSON into CONFIG_FOLDER/<name><ext>.
func FileLogger(content any, name, ext string) {
	path := filepath.Join(viper.GetString(constants.ConfigFolder), name+ext)
	FileLoggerWithPath(content, path)
}

func FileLoggerWithPath(content any, path string) {
	raw, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		Fatalf("failed to marshal content for %s: %s", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		Fatalf("failed to create directory for %s: %s", path, err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		Fatalf("failed to write %s: %s", path, err)
	}
}
