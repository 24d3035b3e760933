package ninja

import (
	"strings"
	"sync"
)

// Default names the targets ninja builds when none are given on its command
// line.
type Default struct {
	guard

	targets []string
}

func newDefault(mu sync.Locker, targets []string) (*Default, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	if err := validatePaths(targets); err != nil {
		return nil, err
	}

	return &Default{
		guard:   guard{mu: mu},
		targets: append([]string(nil), targets...),
	}, nil
}

// Kind returns [KindDefault].
func (d *Default) Kind() Kind { return KindDefault }

// Targets returns a copy of the default targets.
func (d *Default) Targets() []string {
	defer d.lock()()

	return append([]string(nil), d.targets...)
}

// AddTargets appends targets.
func (d *Default) AddTargets(targets ...string) error {
	if err := validatePaths(targets); err != nil {
		return err
	}

	defer d.lock()()

	d.targets = append(d.targets, targets...)

	return nil
}

// String renders the statement as a single line.
func (d *Default) String() string { return d.renderString(d) }

func (d *Default) render(sb *strings.Builder) {
	sb.WriteString("default")
	writePaths(sb, d.targets)
	sb.WriteByte('\n')
}
