// Package cli contains the command line interface for ngen.
//
// # Usage
//
// Generate a build file from one or more manifests:
//
//	ngen gen -o build.ninja build.yaml
//
// gen is the default command, so the name may be omitted. Manifests are
// selected by extension: .yaml, .yml, .json or .hcl. Conditions in the
// manifests see the target platform, which defaults to the host and is
// overridden with --os and --arch, and parameters given with -D:
//
//	ngen --os windows -D mode=release build.yaml
//
// Other commands:
//
//   - dump: print the resolved manifest as YAML, JSON or HCL
//   - escape: escape strings for use in a build file
//   - watch: regenerate the output whenever a manifest changes
//   - init: write a configuration file holding the current flag values
//   - version: print version information
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/ngen/config.yaml). Keys are flag names:
//
//	log-level: debug
//	log-format: json
//
// Command-line flags override configuration values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/ngen/pprof)
package cli
