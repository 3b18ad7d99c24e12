package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"fidel/internal/bus"
	"fidel/internal/config"
	"fidel/internal/keyboard"
	"fidel/internal/layout"
	"fidel/internal/pty"
	"fidel/internal/target"
	"fidel/internal/telemetry"
	"fidel/internal/tmux"
	"fidel/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const debugLogFile = "fidel-debug.log"

// stringSlice implements flag.Value for repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// options holds the parsed command line.
type options struct {
	configPath string
	layoutPath string
	fields     stringSlice
	panes      stringSlice
	split      bool
	exec       string
	dbus       bool
	debug      bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "config file (default $FIDEL_CONFIG or ~/"+config.DefaultRelPath+")")
	flag.StringVar(&opts.layoutPath, "layout", "", "layout file (.toml, .yaml or .json); default is the built-in Amharic layout")
	flag.Var(&opts.fields, "field", "text field to create (repeatable)")
	flag.Var(&opts.panes, "tmux-pane", "tmux pane ID to type into, e.g. %3 (repeatable)")
	flag.BoolVar(&opts.split, "tmux-split", false, "open a shell in a new tmux pane and type into it; the pane is closed on exit")
	flag.StringVar(&opts.exec, "exec", "", "command to run behind a PTY and type into")
	flag.BoolVar(&opts.dbus, "dbus", false, "serve the keyboard on the D-Bus session bus")
	flag.BoolVar(&opts.debug, "debug", false, "log to "+debugLogFile)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fidel [flags]\n\n")
		fmt.Fprintf(os.Stderr, "fidel is an on-screen keyboard for Ethiopic script. It types into\n")
		fmt.Fprintf(os.Stderr, "its own text fields, tmux panes, or a command behind a PTY.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// loadConfig reads the config file and applies flags over it.
func loadConfig(opts options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.layoutPath != "" {
		cfg.Layout = opts.layoutPath
	}
	if len(opts.fields) > 0 {
		cfg.Fields = opts.fields
	}
	if opts.dbus {
		cfg.DBus.Enabled = true
	}
	if opts.debug && cfg.LogFile == "" {
		cfg.LogFile = debugLogFile
	}
	return cfg, cfg.Validate()
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(path, "fidel")
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

// closers runs cleanup in reverse order of registration.
type closers []func()

func (c *closers) add(fn func()) { *c = append(*c, fn) }

func (c closers) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var cleanup closers
	defer cleanup.run()

	logFile, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		cleanup.add(func() { logFile.Close() })
	}

	l := layout.Amharic()
	if cfg.Layout != "" {
		if l, err = layout.Load(cfg.Layout); err != nil {
			return err
		}
	}
	log.Printf("layout %s: %d rows", l.Name, len(l.Rows))

	ctx := context.Background()
	rec, err := telemetry.New(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		return err
	}
	cleanup.add(func() {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rec.Shutdown(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	})

	kb := keyboard.New()
	kb.Observe(rec.Observe)

	// The program is created after its model, but remotes post to it from
	// their own goroutines. Send blocks until Run is reading messages.
	var prog atomic.Pointer[tea.Program]
	send := func(msg tea.Msg) {
		if p := prog.Load(); p != nil {
			p.Send(msg)
		}
	}

	var remotes []ui.Remote
	var liveness ui.LivenessChecker
	if len(opts.panes) > 0 || opts.split {
		if os.Getenv("TMUX") == "" {
			return errors.New("tmux panes need a tmux server; run fidel inside tmux")
		}
		client := tmux.New(nil)
		paneIDs := append([]string(nil), opts.panes...)
		if opts.split {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			id, err := client.SplitPane(wd)
			if err != nil {
				return err
			}
			cleanup.add(func() {
				if err := client.KillPane(id); err != nil {
					log.Printf("kill pane %s: %v", id, err)
				}
			})
			paneIDs = append(paneIDs, id)
		}
		for _, id := range paneIDs {
			title, err := client.PaneTitle(id)
			if err != nil {
				return fmt.Errorf("pane %s: %w", id, err)
			}
			remotes = append(remotes, target.NewTmuxPane(client, id, title))
		}
		liveness = client.ListPaneIDs
	}
	if opts.exec != "" {
		argv := strings.Fields(opts.exec)
		proc, err := target.StartProcess(pty.CreackPTY{}, argv, pty.Size{Rows: 24, Cols: 80}, func() {
			send(ui.ProcessOutputMsg{})
		})
		if err != nil {
			return err
		}
		cleanup.add(func() {
			if err := proc.Close(); err != nil {
				log.Printf("close %s: %v", proc.Name, err)
			}
		})
		remotes = append(remotes, proc)
	}

	fields := cfg.Fields
	if len(fields) == 0 && len(remotes) == 0 {
		fields = []string{"main"}
	}
	app := ui.NewAppModel(kb, ui.Options{
		Layout:    l,
		Fields:    fields,
		Remotes:   remotes,
		Visible:   cfg.Keyboard.Visible,
		Minimized: cfg.Keyboard.Minimized,
		MinWidth:  cfg.Keyboard.MinWidth,
		MaxWidth:  cfg.Keyboard.MaxWidth,
		Liveness:  liveness,
	})
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen())
	prog.Store(p)

	if cfg.Layout != "" {
		w, err := config.WatchLayout(cfg.Layout, func(l *layout.Layout, err error) {
			send(ui.LayoutReloadedMsg{Layout: l, Err: err})
		})
		if err != nil {
			log.Printf("layout watch: %v", err)
		} else {
			cleanup.add(func() { w.Close() })
		}
	}

	if cfg.DBus.Enabled {
		disp := ui.NewProgramDispatcher(send)
		srv, err := bus.Serve(bus.NewService(disp, kb, app.CurrentLayout), cfg.DBus.Name)
		if err != nil {
			return err
		}
		cleanup.add(func() {
			if err := srv.Close(); err != nil {
				log.Printf("bus close: %v", err)
			}
		})
		cleanup.add(disp.Stop)
		go send(ui.StatusMsg{Text: "serving on D-Bus as " + srv.Name()})
	}

	_, err = p.Run()
	return err
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "fidel: %v\n", err)
		os.Exit(1)
	}
}
