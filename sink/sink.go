package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/envlog/config"
	"github.com/philipp01105/envlog/env"
	"github.com/philipp01105/envlog/formatter"
	"github.com/philipp01105/envlog/handler"
	"github.com/philipp01105/envlog/handler/consolehandler"
	"github.com/philipp01105/envlog/handler/filehandler"
	"github.com/philipp01105/envlog/pretty"
)

// Variant names the console pipeline that was built.
type Variant string

const (
	VariantPretty  Variant = "pretty"
	VariantJSON    Variant = "json"
	VariantBrowser Variant = "browser"
)

// PrettyFactory builds the development renderer in front of out.
type PrettyFactory func(out io.Writer, opts pretty.Options) (io.Writer, error)

// Options overrides the defaults of Select.
type Options struct {
	// Stdout receives console records (default os.Stdout)
	Stdout io.Writer
	// Lock serializes writes to Stdout (default: a new mutex)
	Lock *sync.Mutex
	// NewPretty builds the development renderer (default pretty.NewWriter)
	NewPretty PrettyFactory
	// Bindings are attached to full JSON records (default formatter.ProcessBindings)
	Bindings *formatter.Bindings
}

// Sink is the pipeline chosen for a process.
type Sink struct {
	Handler handler.Handler
	Variant Variant
	// Notes describe fallbacks taken while building the pipeline.
	Notes []string
}

// Select builds the pipeline for e using cfg.
func Select(e env.Environment, cfg config.Config, opts Options) *Sink {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Lock == nil {
		opts.Lock = new(sync.Mutex)
	}
	if opts.NewPretty == nil {
		opts.NewPretty = newPrettyWriter
	}
	bindings := formatter.ProcessBindings()
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}

	s := &Sink{}
	console := s.console(e.Profile(), cfg, opts, bindings)

	if cfg.File.Path == "" || e.Profile() == env.ProfileBrowser {
		s.Handler = console
		return s
	}

	fh, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename:   cfg.File.Path,
		Formatter:  formatter.NewJSONFormatter(formatter.Config{}, bindings),
		MaxSize:    cfg.File.MaxSize,
		MaxBackups: cfg.File.MaxBackups,
	})
	if err != nil {
		s.Notes = append(s.Notes, fmt.Sprintf("file destination disabled: %v", err))
		s.Handler = console
		return s
	}
	s.Handler = handler.NewMultiHandler(console, fh)
	return s
}

func (s *Sink) console(p env.Profile, cfg config.Config, opts Options, b formatter.Bindings) handler.Handler {
	switch p {
	case env.ProfileBrowser:
		s.Variant = VariantBrowser
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    opts.Stdout,
			Formatter: formatter.NewBrowserFormatter(),
			Lock:      opts.Lock,
		})

	case env.ProfileDevelopment:
		w, err := opts.NewPretty(opts.Stdout, pretty.Options{Color: cfg.Color})
		if err == nil && w != nil {
			s.Variant = VariantPretty
			return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
				Writer:    w,
				Formatter: formatter.NewJSONFormatter(formatter.Config{Levels: formatter.LevelNumeric}, b),
				Lock:      opts.Lock,
			})
		}
		if err == nil {
			err = fmt.Errorf("factory returned no writer")
		}
		s.Notes = append(s.Notes, fmt.Sprintf("pretty output unavailable, using JSON: %v", err))
	}

	s.Variant = VariantJSON
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    opts.Stdout,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}, b),
		Lock:      opts.Lock,
	})
}

func newPrettyWriter(out io.Writer, opts pretty.Options) (io.Writer, error) {
	return pretty.NewWriter(out, opts)
}
