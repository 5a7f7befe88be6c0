// Command intcode loads and runs intcode programs.
//
// Usage:
//
//	intcode [flags] [program-file]
//
// The program is read from standard input when no file is given. By default
// a single machine runs, taking inputs from -input and printing outputs as
// decimal lines; -ascii instead connects the machine's input and output to
// the terminal as text. Given -phases, copies of the program instead run as
// an amplifier chain, or a feedback loop with -feedback, optionally searching
// every ordering of the phase settings with -search.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcorbin/intcode"
	"github.com/jcorbin/intcode/internal/config"
	"github.com/jcorbin/intcode/internal/fileinput"
	"github.com/jcorbin/intcode/internal/logio"
)

func main() {
	log := logio.NewLogger(os.Stderr)
	log.ErrorIf(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, log))
	os.Exit(log.ExitCode())
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, log *logio.Logger) error {
	cfg, err := parseArgs(args, log)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	if cfg.Log != "" {
		f, err := os.Create(cfg.Log)
		if err != nil {
			return err
		}
		prior := log.SetOutput(f)
		defer func() {
			log.SetOutput(prior)
			log.ErrorIf(f.Close())
		}()
	}

	var opts []intcode.VMOption
	if cfg.Trace {
		opts = append(opts, intcode.WithLogf(log.Leveledf("TRACE")))
	}
	if cfg.MemLimit != 0 {
		opts = append(opts, intcode.WithMemLimit(cfg.MemLimit))
	}
	if cfg.StepLimit != 0 {
		opts = append(opts, intcode.WithStepLimit(cfg.StepLimit))
	}
	if cfg.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout))
		defer cancel()
	}

	if cfg.Resume != "" {
		snap, err := readSnapshot(cfg.Resume)
		if err != nil {
			return err
		}
		return runOne(ctx, cfg, nil, stdin, stdout, log, append(opts, intcode.WithSnapshot(snap))...)
	}

	tape, err := loadTape(cfg, stdin)
	if err != nil {
		return err
	}
	if len(cfg.Phases) > 0 {
		return runPhased(ctx, cfg, tape, stdout, log, opts...)
	}
	return runOne(ctx, cfg, tape, stdin, stdout, log, opts...)
}

func parseArgs(args []string, log *logio.Logger) (config.Config, error) {
	var (
		configPath string
		flagCfg    config.Config
	)
	fs := flag.NewFlagSet("intcode", flag.ContinueOnError)
	fs.SetOutput(&logio.Writer{Logf: log.Leveledf("")})
	fs.StringVar(&configPath, "config", "", "load run configuration from a TOML file")
	fs.Var(&flagCfg.Timeout, "timeout", "specify a time limit")
	fs.BoolVar(&flagCfg.Trace, "trace", false, "enable trace logging")
	fs.UintVar(&flagCfg.MemLimit, "mem-limit", 0, "enable memory limit")
	fs.Uint64Var(&flagCfg.StepLimit, "step-limit", 0, "limit the number of instructions executed")
	fs.Var((*intList)(&flagCfg.Inputs), "input", "comma separated input values")
	fs.Var((*intList)(&flagCfg.Phases), "phases", "comma separated phase settings; runs an amplifier chain")
	fs.BoolVar(&flagCfg.Feedback, "feedback", false, "connect phased machines in a feedback loop")
	fs.BoolVar(&flagCfg.Search, "search", false, "search all orderings of the phase settings for the highest output")
	fs.BoolVar(&flagCfg.ASCII, "ascii", false, "exchange text with the program on standard input and output")
	fs.BoolVar(&flagCfg.Dump, "dump", false, "dump the final machine state")
	fs.StringVar(&flagCfg.Save, "save", "", "save a snapshot of the final machine state to a file")
	fs.StringVar(&flagCfg.Resume, "resume", "", "resume a machine from a saved snapshot")
	fs.StringVar(&flagCfg.Log, "log", "", "write log entries to a file while running")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.FromEnv()
	if configPath != "" {
		if err := config.Load(configPath, &cfg); err != nil {
			return config.Config{}, err
		}
	}

	// explicit flags override any configuration
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			cfg.Timeout = flagCfg.Timeout
		case "trace":
			cfg.Trace = flagCfg.Trace
		case "mem-limit":
			cfg.MemLimit = flagCfg.MemLimit
		case "step-limit":
			cfg.StepLimit = flagCfg.StepLimit
		case "input":
			cfg.Inputs = flagCfg.Inputs
		case "phases":
			cfg.Phases = flagCfg.Phases
		case "feedback":
			cfg.Feedback = flagCfg.Feedback
		case "search":
			cfg.Search = flagCfg.Search
		case "ascii":
			cfg.ASCII = flagCfg.ASCII
		case "dump":
			cfg.Dump = flagCfg.Dump
		case "save":
			cfg.Save = flagCfg.Save
		case "resume":
			cfg.Resume = flagCfg.Resume
		case "log":
			cfg.Log = flagCfg.Log
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Program = fs.Arg(0)
	default:
		return config.Config{}, fmt.Errorf("too many arguments, expected at most one program file, got %q", fs.Args())
	}
	return cfg, nil
}

func loadTape(cfg config.Config, stdin io.Reader) ([]int64, error) {
	if cfg.Program != "" {
		return intcode.ReadTapeFile(cfg.Program)
	}
	if cfg.ASCII {
		return nil, errors.New("ascii mode needs a program file, since standard input is for the program's text")
	}
	return intcode.ParseTape(fileinput.NamedReader("<stdin>", stdin))
}

func runOne(
	ctx context.Context,
	cfg config.Config,
	tape []int64,
	stdin io.Reader, stdout io.Writer,
	log *logio.Logger,
	opts ...intcode.VMOption,
) error {
	if cfg.ASCII {
		opts = append(opts,
			intcode.WithInput(intcode.RuneInput(stdin)),
			intcode.WithOutput(intcode.RuneOutput(stdout)))
	} else {
		opts = append(opts,
			intcode.WithInputs(cfg.Inputs...),
			intcode.WithOutput(intcode.TextOutput(stdout)))
	}

	vm := intcode.New(tape, opts...)
	err := vm.Run(ctx)

	if cfg.Dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		log.ErrorIf(vm.Dump(lw))
		log.ErrorIf(lw.Close())
	}
	if cfg.Save != "" {
		if serr := writeSnapshot(cfg.Save, vm.Snapshot()); err == nil {
			err = serr
		} else {
			log.ErrorIf(serr)
		}
	}
	return err
}

func runPhased(
	ctx context.Context,
	cfg config.Config,
	tape []int64,
	stdout io.Writer,
	log *logio.Logger,
	opts ...intcode.VMOption,
) error {
	run := intcode.ChainFunc(intcode.Chain)
	if cfg.Feedback {
		run = intcode.Loop
	}
	var seed int64
	if len(cfg.Inputs) > 0 {
		seed = cfg.Inputs[0]
	}

	if !cfg.Search {
		out, err := run(ctx, tape, cfg.Phases, seed, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, out)
		return err
	}

	best, setting, err := intcode.Search(ctx, run, tape, cfg.Phases, seed, intcode.SkipErrors, opts...)
	if err != nil {
		return err
	}
	log.Printf("INFO", "best phase setting %v", setting)
	_, err = fmt.Fprintln(stdout, best)
	return err
}

func readSnapshot(name string) (intcode.Snapshot, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return intcode.Snapshot{}, err
	}
	return intcode.UnmarshalSnapshot(data)
}

func writeSnapshot(name string, snap intcode.Snapshot) error {
	data, err := intcode.MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// intList is a flag.Value holding comma separated integers.
type intList []int64

func (il intList) String() string {
	var sb strings.Builder
	for i, v := range il {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

func (il *intList) Set(s string) error {
	values, err := intcode.ParseTapeString(s)
	if err != nil {
		return err
	}
	*il = values
	return nil
}
