package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/srlehn/sixelcat/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:           filepath.Base(os.Args[0]) + ` <image>`,
	Short:         "sixelcat prints an image as sixel graphics",
	Long:          "sixelcat decodes an image file and prints it as a sixel stream to stderr.\nEncoder settings are read from $XDG_CONFIG_HOME/sixelcat/config.toml, ./sixelcat.toml and $SIXELCAT_CONFIG.\nThe flags only affect error reporting and logging, not the sixel output.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.ErrOrStderr(), func() error { return show(cmd.ErrOrStderr(), args[0]) })
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&debugFlag, `debug`, `d`, false, `debug errors`)
	rootCmd.Flags().BoolVarP(&silentFlag, `silent`, `s`, false, `silence errors`)
	rootCmd.Flags().StringVarP(&logFileFlag, `log-file`, `l`, ``, `log file`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// usage errors don't pass through run()
		if !silentFlag && !errReported {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

var (
	debugFlag   bool
	silentFlag  bool
	logFileFlag string

	errReported bool
)

// run reports the error of fn to w and passes it on for the exit code.
func run(w io.Writer, fn func() error) (err error) {
	if fn == nil {
		return errors.NilParam(nil)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(r, 2)
			errReported = true
			if !silentFlag {
				fmt.Fprintln(w, "\n"+err.(*errors.Error).ErrorStack())
			}
		}
	}()
	if err = fn(); err == nil {
		return nil
	}
	errReported = true
	if !silentFlag {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
			fmt.Fprintln(w, "\n"+stackFramer.ErrorStack())
		} else {
			fmt.Fprintln(w, err.Error())
		}
	}
	return err
}
