package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's output, so colors are dropped automatically
// when the output is not a terminal.
type palette struct {
	key, str, num, dur, time, null lipgloss.Style
	yes, no                        lipgloss.Style
	trace, debug, info, warn, err  lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		dur:   fg("5"),
		time:  fg("4"),
		null:  fg("8"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// value renders v without quotes, styled by kind.
func (p *palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())
	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")
	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())
	case slog.KindTime:
		return p.time.Render(v.Time().String())
	case slog.KindAny:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	default:
		return p.str.Render(v.String())
	}
}

// prefixed is an attribute with the group path already applied to its key.
type prefixed struct {
	key    string
	val    slog.Value
	styled bool
}

// flatten resolves a and appends it, expanding groups into dotted keys.
func flatten(dst []prefixed, prefix string, a slog.Attr) []prefixed {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() != slog.KindGroup {
		return append(dst, prefixed{key: key, val: a.Value})
	}

	for _, ga := range a.Value.Group() {
		dst = flatten(dst, key, ga)
	}

	return dst
}

// prettyHandler is the shared state of the pretty text and JSON handlers.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	prefix string
	attrs  []prefixed
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) prettyHandler {
	return prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, pal: newPalette(w)}
}

func (h prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	next := h
	next.attrs = append([]prefixed(nil), h.attrs...)

	for _, a := range attrs {
		next.attrs = flatten(next.attrs, h.prefix, a)
	}

	return next
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	next := h
	if name == "" {
		return next
	}

	if h.prefix != "" {
		next.prefix = h.prefix + "." + name
	} else {
		next.prefix = name
	}

	return next
}

// fields returns the record's built-in and user attributes in output order,
// after ReplaceAttr.
func (h prettyHandler) fields(r slog.Record) []prefixed {
	builtin := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		builtin = append(builtin, slog.Time(slog.TimeKey, r.Time))
	}

	builtin = append(builtin, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			builtin = append(builtin,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	builtin = append(builtin, slog.String(slog.MessageKey, r.Message))

	out := make([]prefixed, 0, len(builtin)+len(h.attrs)+r.NumAttrs())

	for _, a := range builtin {
		level, isLevel := a.Value.Any().(slog.Level)

		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Equal(slog.Attr{}) {
			continue
		}

		f := prefixed{key: a.Key, val: a.Value}
		if isLevel {
			f.val = slog.StringValue(h.pal.level(level).Render(a.Value.String()))
			f.styled = true
		}

		out = append(out, f)
	}

	out = append(out, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		out = flatten(out, h.prefix, a)

		return true
	})

	return out
}

func (h prettyHandler) render(f prefixed) string {
	if f.styled {
		return f.val.String()
	}

	return h.pal.value(f.val)
}

func (h prettyHandler) write(buf *bytes.Buffer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one line per record as unquoted key=value pairs.
type prettyTextHandler struct{ prettyHandler }

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{newPrettyHandler(w, opts)}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(h.render(f))
	}

	buf.WriteByte('\n')

	return h.write(&buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes each record as an indented, JSON-like block.
type prettyJSONHandler struct{ prettyHandler }

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyHandler(w, opts)}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString("{\n")

	for i, f := range h.fields(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(h.render(f))
	}

	buf.WriteString("\n}\n")

	return h.write(&buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
