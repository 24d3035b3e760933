package profile

// Profiler selects a profiling mode and the directory profile data is
// written to.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option returns a copy of a Profiler with one field changed.
type Option func(Profiler) Profiler

// Stopper stops a running profiler. Stop is always safe to call.
type Stopper interface{ Stop() }

// New returns a Profiler with all options applied in order.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start starts profiling and returns a Stopper for it.
//
// Start returns a no-op Stopper if p.Mode is empty or unknown, or if the
// binary was built without the pprof tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
