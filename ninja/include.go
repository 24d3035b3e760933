package ninja

import (
	"strings"
	"sync"
)

// Include reads another ninja file. With kind [KindInclude] the file shares
// the current scope; with [KindSubninja] it gets a child scope of its own.
type Include struct {
	guard

	kind Kind
	path string
}

func newInclude(mu sync.Locker, kind Kind, path string) (*Include, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	return &Include{guard: guard{mu: mu}, kind: kind, path: path}, nil
}

// Kind returns [KindInclude] or [KindSubninja].
func (i *Include) Kind() Kind { return i.kind }

// Path returns the path of the included file.
func (i *Include) Path() string { return i.path }

// String renders the statement as a single line.
func (i *Include) String() string { return i.renderString(i) }

func (i *Include) render(sb *strings.Builder) {
	sb.WriteString(i.kind.String())
	sb.WriteByte(' ')
	sb.WriteString(EscapePath(i.path))
	sb.WriteByte('\n')
}
