// Package cli implements the cornlog command: it logs one message with the given
// context and level, then exits.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
	"github.com/hyp3rd/cornlog/pkg/adapter"
	"github.com/hyp3rd/cornlog/pkg/configloader"
	"github.com/hyp3rd/cornlog/pkg/payload"
)

// errInvalidLevel is reported after its message has already been printed.
var errInvalidLevel = ewrap.New("invalid level")

type flags struct {
	context    string
	level      string
	message    string
	sub        string
	format     string
	configFile string
}

// NewRootCommand builds the cornlog command writing log lines to stdout and
// diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts flags

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Logger CLI CodeCorn - log colorato e opzionale su file",
		Long:    "Logga un messaggio colorato su console e, con LOG_STORE=true, su file giornaliero in LOG_DIR.",
		Version: constants.Version,
		Example: `  cornlog -c SYSTEM -l info -m "Avvio completato"
  cornlog -c DB -l error -m "Connessione rifiutata" -s DBConnect
  cornlog -c API -l debug -f json -m '{"path": "/users", "status": 200}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&opts.context, "context", "c", "", "Contesto del log (es: SYSTEM, DB, API)")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "", "Livello log: info | warn | error | debug")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "Messaggio da loggare")
	cmd.Flags().StringVarP(&opts.sub, "sub", "s", "", "Sotto-contesto opzionale")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(payload.FormatText), "Formato del messaggio: text | json | yaml | json5")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "File di configurazione YAML (default: variabili d'ambiente)")

	for _, name := range []string{"context", "level", "message"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// Execute runs the command with args and returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	if err != errInvalidLevel { //nolint:errorlint // sentinel is returned unwrapped.
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return 1
}

func run(opts flags, stdout, stderr io.Writer) error {
	level := strings.ToLower(opts.level)

	// Exactly the four documented names; ParseLevel would also take "warning".
	switch level {
	case "info", "warn", "error", "debug":
	default:
		fmt.Fprintf(stderr, "❌ Livello non valido: %s\n", level)

		return errInvalidLevel
	}

	format, err := payload.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := configloader.Load(opts.configFile)
	if err != nil {
		return ewrap.Wrap(err, "failed to load configuration")
	}

	cfg.Output = stdout
	cfg.ErrorOutput = stderr

	logger, err := adapter.NewAdapter(*cfg)
	if err != nil {
		return ewrap.Wrap(err, "failed to create logger")
	}

	if closer, ok := logger.(io.Closer); ok {
		defer closer.Close()
	}

	var callOpts []cornlog.Option
	if opts.sub != "" {
		callOpts = append(callOpts, cornlog.WithSubContext(opts.sub))
	}

	if level == "error" {
		logger.Error(opts.context, ewrap.New(opts.message), callOpts...)

		return nil
	}

	message, err := payload.Decode(format, opts.message)
	if err != nil {
		return err
	}

	switch level {
	case "warn":
		logger.Warn(opts.context, message, callOpts...)
	case "debug":
		logger.Debug(opts.context, message, callOpts...)
	default:
		logger.Info(opts.context, message, callOpts...)
	}

	return nil
}
