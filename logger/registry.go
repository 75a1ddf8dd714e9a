package logger

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/philipp01105/envlog/alert"
	"github.com/philipp01105/envlog/config"
	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/env"
	"github.com/philipp01105/envlog/handler"
	"github.com/philipp01105/envlog/sink"
)

// InternalName is the logger name used for the library's own messages.
const InternalName = "envlog"

// Registry holds the state shared by every Logger of a process: the
// resolved configuration and environment, the output handler and the
// alert dispatcher. Named loggers are created on first use and cached.
type Registry struct {
	cfg        config.Config
	env        env.Environment
	threshold  core.Level
	handler    handler.Handler
	variant    sink.Variant
	dispatcher *alert.Dispatcher

	errOut       io.Writer
	writeErrOnce sync.Once

	loggers sync.Map // name -> *Logger
}

type registryOptions struct {
	sink     sink.Options
	handler  handler.Handler
	notifier alert.Notifier
	client   *http.Client
	errOut   io.Writer
}

// RegistryOption customizes NewRegistry.
type RegistryOption func(*registryOptions)

// UseSink passes options to sink selection.
func UseSink(o sink.Options) RegistryOption {
	return func(ro *registryOptions) { ro.sink = o }
}

// UseHandler bypasses sink selection and writes every record to h.
func UseHandler(h handler.Handler) RegistryOption {
	return func(ro *registryOptions) { ro.handler = h }
}

// UseNotifier sends critical alerts through n. It enables alerts even
// when no webhook address is configured.
func UseNotifier(n alert.Notifier) RegistryOption {
	return func(ro *registryOptions) { ro.notifier = n }
}

// UseHTTPClient sets the client used by the webhook notifier.
func UseHTTPClient(c *http.Client) RegistryOption {
	return func(ro *registryOptions) { ro.client = c }
}

// UseErrorOutput sets where write failures are reported (default os.Stderr).
func UseErrorOutput(w io.Writer) RegistryOption {
	return func(ro *registryOptions) { ro.errOut = w }
}

// NewRegistry builds the shared state for cfg and e. Configuration
// warnings and degraded outputs are logged once at warn level.
func NewRegistry(cfg config.Config, e env.Environment, opts ...RegistryOption) *Registry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.errOut == nil {
		o.errOut = os.Stderr
	}

	r := &Registry{
		cfg:       cfg,
		env:       e,
		threshold: cfg.Threshold(e.Profile()),
		errOut:    o.errOut,
	}

	var notes []string
	if o.handler != nil {
		r.handler = o.handler
	} else {
		s := sink.Select(e, cfg, o.sink)
		r.handler = s.Handler
		r.variant = s.Variant
		notes = s.Notes
	}

	notifier := o.notifier
	if notifier == nil && cfg.AlertsEnabled() {
		wh, err := alert.NewWebhook(cfg.AlertWebhookURL, o.client)
		if err != nil {
			notes = append(notes, fmt.Sprintf("critical alerts disabled: %v", err))
		} else {
			notifier = wh
		}
	}
	if notifier != nil {
		r.dispatcher = alert.NewDispatcher(notifier, alert.DispatcherConfig{
			Timeout:   cfg.AlertTimeout,
			PerMinute: cfg.AlertRateLimit,
		})
	}

	if len(cfg.Warnings) > 0 || len(notes) > 0 {
		l := r.Logger(InternalName)
		for _, w := range cfg.Warnings {
			l.Warn("Ignoring invalid logging setting", String("detail", w))
		}
		for _, n := range notes {
			l.Warn("Logging output degraded", String("detail", n))
		}
	}
	return r
}

// Logger returns the cached Logger for name, creating it on first use.
func (r *Registry) Logger(name string) *Logger {
	if l, ok := r.loggers.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := r.loggers.LoadOrStore(name, New(r, name))
	return l.(*Logger)
}

// Config returns the resolved configuration.
func (r *Registry) Config() config.Config { return r.cfg }

// Environment returns the resolved environment.
func (r *Registry) Environment() env.Environment { return r.env }

// Threshold returns the default minimum level of new loggers.
func (r *Registry) Threshold() core.Level { return r.threshold }

// Variant returns the console pipeline chosen for the environment. It
// is empty when the handler was supplied with UseHandler.
func (r *Registry) Variant() sink.Variant { return r.variant }

// AlertsEnabled reports whether critical records are escalated.
func (r *Registry) AlertsEnabled() bool { return r.dispatcher != nil }

// Wait blocks until in-flight alert deliveries have finished.
func (r *Registry) Wait() {
	if r.dispatcher != nil {
		r.dispatcher.Wait()
	}
}

func (r *Registry) reportWriteError(err error) {
	r.writeErrOnce.Do(func() {
		fmt.Fprintf(r.errOut, "envlog: failed to write log record: %v\n", err)
	})
}
