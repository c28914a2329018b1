package options

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

// LogLevelIds maps zerolog levels to their flag spellings.
var LogLevelIds = map[zerolog.Level][]string{
	zerolog.PanicLevel: {"panic"},
	zerolog.FatalLevel: {"fatal"},
	zerolog.ErrorLevel: {"error"},
	zerolog.WarnLevel:  {"warn", "warning"},
	zerolog.InfoLevel:  {"info"},
	zerolog.DebugLevel: {"debug"},
	zerolog.TraceLevel: {"trace"},
	zerolog.Disabled:   {"off", "disabled"},
}

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = zerolog.WarnLevel

// LogOptions
type LogOptions struct {
	Level zerolog.Level
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	o.Level = DefaultLogLevel
	cmd.PersistentFlags().VarP(
		enumflag.New(&o.Level, "level", LogLevelIds, enumflag.EnumCaseInsensitive),
		"log", "l",
		"Set log level; one of 'trace', 'debug', 'info', 'warn', 'error', 'fatal', 'panic' or 'off'.")
}

// ConfigureLogging sets the global zerolog level and writer. An explicit
// --log wins over SHELF_LOG_LEVEL.
func (o *LogOptions) ConfigureLogging(cmd *cobra.Command, out io.Writer) {
	v := viper.New()
	v.SetEnvPrefix("SHELF")
	_ = v.BindEnv("log_level")

	level := o.Level
	if !cmd.Flags().Changed("log") {
		if env := v.GetString("log_level"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
	}
	zerolog.SetGlobalLevel(level)

	if out == nil {
		out = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
}
