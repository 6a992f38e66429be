package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	bf "nickandperla.net/brainfuck"
)

var log = logrus.New()

var (
	toolConfigPath string
	inlineSource   string
	interactive    bool
	profiled       bool
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "bf [flags] [SCRIPT]",
	Short: "A Brainfuck interpreter",
	Long: `bf runs Brainfuck programs from a script file, an inline source
string (-e), or an interactive interpreter session (-i). Program input
is read from stdin and program output is written to stdout. When the
tool config defines a [persistence] section, every completed run is
recorded to a SQLite ledger (see "bf history").`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&toolConfigPath, "config", "./config.toml", "The config file for bf tools to use. Defaults to './config.toml'")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&inlineSource, "execute", "e", "", "Execute a literal script")
	rootCmd.Flags().BoolVarP(&interactive, "interpreter", "i", false, "Run in real-time interpreter mode")
	rootCmd.Flags().BoolVar(&profiled, "profile", false, "Write a CPU profile to the current directory")
	rootCmd.AddCommand(historyCmd)
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if profiled {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	toolConfig, err := bf.LoadToolConfig(toolConfigPath)
	if err != nil {
		return fmt.Errorf("unable to load bf config: %v", err)
	}

	var persist *bf.Persistence
	if toolConfig.Persistence != nil {
		if persist, err = bf.NewPersistence(toolConfig.Persistence); err != nil {
			return fmt.Errorf("failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()
	}

	switch {
	case interactive:
		return runREPL(toolConfig.Machine, persist)
	case len(inlineSource) > 0:
		return runSource(inlineSource, toolConfig.Machine, persist)
	case len(args) == 1:
		source, err := ioutil.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("cannot read the script %s: %v", args[0], err)
		}
		return runSource(string(source), toolConfig.Machine, persist)
	default:
		return fmt.Errorf("no script provided and not running in interpreter mode or execute mode")
	}
}

func runSource(source string, mc *bf.MachineConfig, persist *bf.Persistence) error {
	out := &countingWriter{sink: os.Stdout}
	machine := bf.NewMachine(mc, os.Stdin, out)

	log.Debugf("Running [%d] byte script", len(source))
	runErr := machine.Run(source)
	log.Debugf("Executed [%d] instructions, wrote [%d] bytes", machine.InstructionCount, out.count)

	recordRun(persist, source, machine, runErr, out.count)
	return runErr
}

func recordRun(persist *bf.Persistence, source string, machine *bf.Machine, runErr error, outputBytes uint) {
	if persist == nil {
		return
	}
	record := bf.NewRunRecord(source, machine, runErr, outputBytes)
	if id, err := persist.CreateRun(record); err != nil {
		log.Warnf("Failed to record run: %v", err)
	} else {
		log.Debugf("Recorded run [%d]", id)
	}
}

// countingWriter counts bytes on their way to the sink so a run record
// can report output volume without buffering the output itself.
type countingWriter struct {
	sink  io.Writer
	count uint
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.sink.Write(p)
	w.count = w.count + uint(n)
	return n, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bf: %v\n", err)
		os.Exit(1)
	}
}
