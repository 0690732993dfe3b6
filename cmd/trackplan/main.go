// Command trackplan runs the track-geometry engine on a measurement file.
//
// Usage:
//
//	trackplan [global flags] <command> [flags] <series-file>
//
// The series file holds one "distance value" pair per line (whitespace or
// comma separated, '#' starts a comment). Parameters come from defaults,
// an optional parameter file (--params, YAML/JSON/TOML) and flags, in that
// order of precedence, lowest first.
//
// Examples:
//
//	trackplan restore --min-wavelength 6 --max-wavelength 40 left.txt
//	trackplan wavebands left.txt
//	trackplan plan --params site.yaml --print-movements left.txt
//	trackplan --log-level debug plan left.txt
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
