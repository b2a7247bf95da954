package app

import "fmt"

// SetVersionBuildCommitString wires ldflags-injected build metadata
// into the root command's --version output.
func SetVersionBuildCommitString(version, commit, buildDate string) {
	if version == "" {
		version = "dev"
	}
	v := version
	if commit != "" {
		v = fmt.Sprintf("%s (%s)", v, commit)
	}
	if buildDate != "" {
		v = fmt.Sprintf("%s, built %s", v, buildDate)
	}
	rootCmd.Version = v
}
