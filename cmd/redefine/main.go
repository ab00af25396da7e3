package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotswaplabs/redefine"
)

var version = "dev"

// Exit codes: 0 the methods are equivalent, 1 they are not, 2 the inputs
// could not be loaded or the invocation was invalid.
func main() {
	root := &cobra.Command{
		Use:           "redefine",
		Short:         "Method body equivalence checks for class redefinition",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().Bool("trace", false, "Write comparison diagnostics to stderr")
	viper.BindPFlags(root.PersistentFlags())
	viper.SetEnvPrefix("REDEFINE")
	viper.AutomaticEnv()

	root.AddCommand(newCompareCmd(), newDisCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func setupColor() {
	if viper.GetBool("no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func traceOptions() []redefine.Option {
	if !viper.GetBool("trace") {
		return nil
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return []redefine.Option{redefine.WithLogger(log)}
}
