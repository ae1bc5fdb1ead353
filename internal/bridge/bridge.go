package bridge

import (
	"log/slog"
	"sync"

	"github.com/roach88/glbridge/internal/calls"
	"github.com/roach88/glbridge/internal/encoder"
	"github.com/roach88/glbridge/internal/frame"
	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/ident"
	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/transport"
)

// Bridge binds proxies and the frame scheduler to one host transport.
//
// Thread-safety: a Bridge and its proxies are meant for one goroutine, the
// one that issues graphics calls. Only the frame scheduler accepts
// registrations from other goroutines.
type Bridge struct {
	transport transport.Transport
	logger    *slog.Logger
	table     calls.Table
	ids       *ident.Correlator
	encoder   *encoder.Encoder

	mu     sync.Mutex
	frames *frame.Scheduler
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTable replaces the classification table. Default: calls.Default().
func WithTable(table calls.Table) Option {
	return func(b *Bridge) {
		if table != nil {
			b.table = table
		}
	}
}

// WithConfig merges classification overrides into the table. Options apply
// in order, so WithConfig after WithTable overrides the given table.
func WithConfig(cfg *calls.Config) Option {
	return func(b *Bridge) {
		b.table = b.table.Apply(cfg)
	}
}

// WithCorrelator sets the id source, e.g. to resume numbering.
func WithCorrelator(ids *ident.Correlator) Option {
	return func(b *Bridge) {
		if ids != nil {
			b.ids = ids
		}
	}
}

// New creates a bridge delivering to t.
func New(t transport.Transport, opts ...Option) *Bridge {
	b := &Bridge{
		transport: t,
		logger:    slog.Default(),
		table:     calls.Default(),
		ids:       ident.NewCorrelator(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.encoder = encoder.New(b.table, b.ids)
	return b
}

// CreationOptions are supplied when a context is wrapped.
type CreationOptions struct {
	// PassThrough selects local mode: the real context executes every call.
	PassThrough bool

	// Config, if non-nil, is sent as the only argument of one synchronous
	// configure call before Wrap returns.
	Config any

	// Width and Height are the drawing buffer size reported in bridged mode.
	Width, Height int
}

// Wrap intercepts underlying. In bridged mode underlying may be nil.
func (b *Bridge) Wrap(underlying gl.Context, opts CreationOptions) (*Proxy, error) {
	if _, ok := underlying.(*Proxy); ok {
		return nil, configurationError("cannot wrap a proxy", ErrAlreadyWrapped)
	}
	if opts.PassThrough && underlying == nil {
		return nil, ir.NewConfigurationError("local mode requires a real context")
	}

	p := &Proxy{
		bridge:      b,
		real:        underlying,
		passThrough: opts.PassThrough,
		width:       opts.Width,
		height:      opts.Height,
	}

	if opts.Config != nil {
		if err := b.configure(opts.Config); err != nil {
			return nil, err
		}
	}

	b.logger.Info("context wrapped", "mode", p.Mode(), "configured", opts.Config != nil)
	return p, nil
}

// configure sends the creation-time configuration payload.
func (b *Bridge) configure(cfg any) error {
	v, err := ir.FromGo(cfg)
	if err != nil {
		return configurationError("configuration payload cannot be serialized", err)
	}
	msg, err := ir.NewDescriptor(ir.ConfigureCall, ir.Array{v}).Encode()
	if err != nil {
		return configurationError("configuration payload cannot be serialized", err)
	}
	if _, err := b.transport.CallSync(msg); err != nil {
		b.logger.Warn("configure failed", "error", err)
		return ir.NewTransportError(ir.ConfigureCall, err)
	}
	return nil
}

// InstallFrames creates the bridge's frame scheduler on platform. Frame
// signals go through the bridge's transport, interleaved with calls.
func (b *Bridge) InstallFrames(platform frame.Platform) (*frame.Scheduler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frames != nil {
		return nil, configurationError("frames already installed", ErrFramesInstalled)
	}
	if platform == nil {
		return nil, ir.NewConfigurationError("frame platform is nil")
	}
	b.frames = frame.NewScheduler(platform, b.transport, b.logger)
	b.logger.Info("frame scheduler installed")
	return b.frames, nil
}

// Frames returns the installed scheduler, or nil.
func (b *Bridge) Frames() *frame.Scheduler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Correlator returns the bridge's id source.
func (b *Bridge) Correlator() *ident.Correlator {
	return b.ids
}

// Table returns the classification in effect.
func (b *Bridge) Table() calls.Table {
	return b.table
}
