package slogpretty

import (
	"context"
	"encoding/json"
	"github.com/fatih/color"
	"io"
	stdLog "log"
	"log/slog"
)

type PrettyHandlerOptions struct {
	SlogOpts *slog.HandlerOptions
}

// PrettyHandler renders records as a coloured single line followed by the attributes as indented JSON.
// Meant for the local environment only.
type PrettyHandler struct {
	slog.Handler
	l *stdLog.Logger
	// fields holds the attributes added through WithAttrs, nested by group.
	fields map[string]interface{}
	groups []string
}

func (opts PrettyHandlerOptions) NewPrettyHandler(out io.Writer) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(out, opts.SlogOpts),
		l:       stdLog.New(out, "", 0),
		fields:  map[string]interface{}{},
	}
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := cloneFields(h.fields)
	target := groupMap(fields, h.groups)

	r.Attrs(func(a slog.Attr) bool {
		addAttr(target, a)
		return true
	})

	var b []byte
	var err error

	if len(fields) > 0 {
		b, err = json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := color.CyanString(r.Message)

	h.l.Println(
		timeStr,
		level,
		msg,
		color.WhiteString(string(b)),
	)

	return nil
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := cloneFields(h.fields)
	target := groupMap(fields, h.groups)

	for _, a := range attrs {
		addAttr(target, a)
	}

	return &PrettyHandler{
		Handler: h.Handler.WithAttrs(attrs),
		l:       h.l,
		fields:  fields,
		groups:  h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return &PrettyHandler{
		Handler: h.Handler.WithGroup(name),
		l:       h.l,
		fields:  h.fields,
		groups:  groups,
	}
}

func addAttr(fields map[string]interface{}, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Key != "" {
			fields[a.Key] = a.Value.Any()
		}
		return
	}

	// an unnamed group is inlined
	target := fields
	if a.Key != "" {
		target = groupMap(fields, []string{a.Key})
	}

	for _, ga := range a.Value.Group() {
		addAttr(target, ga)
	}
}

// groupMap returns the map nested under path, creating it when missing.
func groupMap(fields map[string]interface{}, path []string) map[string]interface{} {
	for _, name := range path {
		next, ok := fields[name].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			fields[name] = next
		}
		fields = next
	}
	return fields
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if m, ok := v.(map[string]interface{}); ok {
			v = cloneFields(m)
		}
		c[k] = v
	}
	return c
}
