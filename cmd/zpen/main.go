package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/zpen/internal/config"
	"github.com/example/zpen/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	configPath    string
	captureAlerts bool
	copyAlerts    bool
	verbose       bool
	monitor       string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) Template() string {
	return "root.txt"
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("zpen", flag.ExitOnError),
		program:  "zpen",
		notifier: notify.New(notify.MessagesFromEnv()),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after saving a capture")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.verbose, "v", false, "log every input event and command")
	r.fs.StringVar(&r.configPath, "config", "", "read configuration from this file")

	// Precedence: CLI > Env > Config > Default
	// The monitor default stays empty so ZPEN_MONITOR and the config can fill it in Run.
	r.fs.StringVar(&r.monitor, "monitor", "", "freeze only the monitor matching this name or index")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.configPath != "" {
		if err := r.reloadConfig(r.configPath); err != nil {
			return err
		}
	}
	if r.monitor == "" {
		r.monitor = strings.TrimSpace(os.Getenv("ZPEN_MONITOR"))
	}
	if r.monitor == "" {
		r.monitor = r.config.Monitor
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.KindCapture, r.captureAlerts)
		r.notifier.Enable(notify.KindCopy, r.copyAlerts)
	}

	cmdName := "draw"
	var subArgs []string
	if r.fs.NArg() > 0 {
		cmdName = r.fs.Arg(0)
		subArgs = r.fs.Args()[1:]
	}

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	if runErr := cmd.Run(); runErr != nil {
		return runErr
	}
	return nil
}

// reloadConfig replaces the startup configuration with the file at path.
// Root flags given explicitly on the command line keep their values.
func (r *root) reloadConfig(path string) error {
	loader := config.NewLoader(version, path)
	if loader.GetConfigPath() == "" {
		return fmt.Errorf("config file %s not found", path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-capture"] {
		r.captureAlerts = cfg.Notify.Capture
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.config = cfg
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
