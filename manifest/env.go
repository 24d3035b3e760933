package manifest

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ardnew/mung"
)

// host describes the platform a build file is generated for, using Go
// naming conventions (GOOS and GOARCH).
type host struct {
	OS   string
	Arch string
}

// hostPlatform returns the host platform. GOHOSTOS/GOHOSTARCH take
// precedence over GOOS/GOARCH, which take precedence over the runtime.
func hostPlatform() host {
	pick := func(fallback string, keys ...string) string {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok && v != "" {
				return v
			}
		}

		return fallback
	}

	return host{
		OS:   pick(runtime.GOOS, "GOHOSTOS", "GOOS"),
		Arch: pick(runtime.GOARCH, "GOHOSTARCH", "GOARCH"),
	}
}

// Target returns the platform as a GNU-style "arch-os" pair, such as
// "x86_64-linux" or "aarch64-linux".
func (h host) Target() string {
	arch := h.Arch

	switch arch {
	case "386":
		arch = "i386"
	case "amd64":
		arch = "x86_64"
	case "arm":
		if v, ok := os.LookupEnv("GOARM"); ok {
			v, _, _ = strings.Cut(v, ",")
			switch v = strings.TrimSpace(v); v {
			case "5", "6", "7":
				arch = "armv" + v
			}
		}
	case "arm64":
		if h.OS != "darwin" {
			arch = "aarch64"
		}
	case "mipsle":
		arch = "mipsel"
	}

	return arch + "-" + h.OS
}

// environMap converts a list of "KEY=VALUE" strings to a map.
func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}

	return m
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string { return filepath.Join(elem...) }

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

func pathBase(path string) string { return filepath.Base(path) }

func pathExt(path string) string { return filepath.Ext(path) }

// mungPrefix prepends items to the list-separated string list, dropping
// duplicates.
func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// mungPrefixIf is mungPrefix keeping only items accepted by predicate.
func mungPrefixIf(list string, predicate func(string) bool, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
