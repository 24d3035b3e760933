package ninja

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ConsolePool is the name of ninja's built-in pool of depth 1 whose jobs
// have direct access to the terminal.
const ConsolePool = "console"

// Pool limits the number of concurrently running jobs assigned to it.
type Pool struct {
	guard

	name  string
	depth int
}

func newPool(mu sync.Locker, name string, depth int) (*Pool, error) {
	if err := ValidateIdentifier("pool", name); err != nil {
		return nil, err
	}

	if depth < 0 {
		return nil, ErrNegativeDepth.With(
			slog.String("pool", name),
			slog.Int("depth", depth),
		)
	}

	return &Pool{guard: guard{mu: mu}, name: name, depth: depth}, nil
}

// Kind returns [KindPool].
func (p *Pool) Kind() Kind { return KindPool }

// Name returns the pool's name.
func (p *Pool) Name() string { return p.name }

// Depth returns the pool's depth.
func (p *Pool) Depth() int {
	defer p.lock()()

	return p.depth
}

// SetDepth changes the pool's depth. A depth of 0 means unlimited.
func (p *Pool) SetDepth(depth int) error {
	if depth < 0 {
		return ErrNegativeDepth.With(
			slog.String("pool", p.name),
			slog.Int("depth", depth),
		)
	}

	defer p.lock()()

	p.depth = depth

	return nil
}

// String renders the pool header and its depth.
func (p *Pool) String() string { return p.renderString(p) }

func (p *Pool) render(sb *strings.Builder) {
	sb.WriteString("pool ")
	sb.WriteString(p.name)
	sb.WriteByte('\n')
	writeBinding(sb, true, "depth", Literal(strconv.Itoa(p.depth)))
}
