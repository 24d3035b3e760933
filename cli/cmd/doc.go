// Package cmd implements the ngen subcommands.
//
// Commands that read manifests embed [Source], which carries the manifest
// arguments and the flags that select the target platform and condition
// parameters. Each command's Run method receives a [context.Context]
// prepared with [WithContext] and, optionally, [WithOutput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the configuration file.
	ConfigIdentifier = "config"
)
