// increcli is a small demo CLI over the incremental engine: it exercises
// register/update/plan/mark-compiled/combine end to end against real files
// on disk. It is a convenience wrapper, not part of the engine's contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cacheDir      string
	buildCfgPath  string
	engineCfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "increcli",
	Short: "Exercise the incremental recompilation engine from the command line",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", ".incremental-cache", "directory for engine persistence (units.dat, incremental_cache.dat)")
	rootCmd.PersistentFlags().StringVar(&buildCfgPath, "build-config", "", "optional YAML config for the build cache (cache_dir/max_size/strategy/badger_path)")
	rootCmd.PersistentFlags().StringVar(&engineCfgPath, "engine-config", "", "optional YAML config for the engine's compilation cache directory (overrides --cache-dir)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(buildCmd)
}
