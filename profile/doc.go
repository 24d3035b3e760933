// Package profile provides optional runtime profiling for ngen.
//
// # Overview
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only when
// the "pprof" build tag is set:
//
//	go build -tags pprof .
//
// Without the tag every [Profiler] is a no-op, [Modes] is empty, and the
// pprof flags are absent from the command line.
//
// # Modes
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace. Use [Modes] to list them programmatically.
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithDir("/tmp/ngen-pprof"),
//	)
//	defer p.Start().Stop()
//
// Profile data is written to Dir with names matching the mode (cpu.pprof,
// mem.pprof, ...). The default directory used by the ngen command is
// $XDG_CACHE_HOME/ngen/pprof.
//
// Analyze the output with go tool pprof:
//
//	go tool pprof -http=: /tmp/ngen-pprof/cpu.pprof
//
// When built with the tag the package also imports [net/http/pprof], which
// registers its handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
