package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/cobra"
)

var (
	// logDebug Used for flags
	logDebug bool
	// logJSON Used for flags
	logJSON bool

	rootCmd = &cobra.Command{
		Use:          "chainmap",
		Short:        "Inspect the bucket layout of a chained hash map",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&logDebug, "log-debug", "d", false, "Enable debug logs")
	rootCmd.PersistentFlags().BoolVarP(&logJSON, "log-json", "j", false, "Print logs in JSON format")

	rootCmd.AddCommand(newReplayCmd())
}

func newLogger(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if !logJSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.StampMicro,
		}
	}
	level := zerolog.InfoLevel
	if logDebug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
