// Package commands implements the tvm command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/timevalue/config"
	"github.com/meenmo/timevalue/logger"
)

// errRequestFailed signals that an error has already been written to stdout
// as JSON and the process should exit 1.
var errRequestFailed = errors.New("request failed")

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	cfgPath   string
	logLevel  string
	pretty    bool
	inputPath string

	cfg *config.Config
	log zerolog.Logger
}

// Execute runs tvm with args and returns the process exit code: 0 on
// success, 1 when any request failed, 2 on usage errors.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: zerolog.Nop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRequestFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, root.UsageString())
		return 2
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tvm",
		Short: "Time value of money calculations",
		Long: `tvm discounts and compounds cash flows and solves for internal rates of return.

Every command reads a request (JSON or YAML, a single object or an array for
batch processing) from --input or stdin and writes JSON to stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default: ./configs/tvm.yaml or ./tvm.yaml if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "human-readable logs on stderr")
	root.PersistentFlags().StringVarP(&a.inputPath, "input", "i", "", "request file (reads stdin if omitted)")

	root.AddCommand(a.pvCmd(), a.npvCmd(), a.fvCmd(), a.irrCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Log.Pretty = a.pretty
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Out: a.stderr})
	return nil
}

func (a *app) readInput() ([]byte, error) {
	path := strings.TrimSpace(a.inputPath)
	if path != "" {
		return os.ReadFile(path)
	}
	if f, ok := a.stdin.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input: pass --input or pipe a request on stdin")
		}
	}
	return io.ReadAll(a.stdin)
}

func (a *app) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return a.writeFatal(fmt.Sprintf("encode output: %v", err))
	}
	fmt.Fprintln(a.stdout, string(b))
	return nil
}

func (a *app) writeFatal(msg string) error {
	a.log.Error().Msg(msg)
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{msg})
	fmt.Fprintln(a.stdout, string(b))
	return errRequestFailed
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is not finite", name)
	}
	return nil
}
