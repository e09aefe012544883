package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

func readBuildInfo() buildInfo {
	b := buildInfo{Version: version, Revision: "unknown", GoVersion: runtime.Version()}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	if info.GoVersion != "" {
		b.GoVersion = info.GoVersion
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
			if len(b.Revision) > 12 {
				b.Revision = b.Revision[:12]
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

func (b buildInfo) String() string {
	rev := b.Revision
	if b.Modified {
		rev += "+dirty"
	}
	return fmt.Sprintf("storefront %s\n  revision: %s\n  go:       %s\n", b.Version, rev, b.GoVersion)
}

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the storefront build",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		b := readBuildInfo()
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), b.Version)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), b.String())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
}
