package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"guardc/internal/prof"
)

// setupProfiling starts the profilers requested by --cpu-profile,
// --mem-profile and --runtime-trace. The cleanup writes them out.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	paths := make(map[string]string, 3)
	for _, name := range []string{"cpu-profile", "mem-profile", "runtime-trace"} {
		value, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		paths[name] = value
	}

	session, err := prof.Start(prof.Options{
		CPU:   paths["cpu-profile"],
		Mem:   paths["mem-profile"],
		Trace: paths["runtime-trace"],
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
