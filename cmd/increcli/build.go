package main

import (
	"time"

	"github.com/spf13/cobra"

	"incremental-engine/internal/buildcache"
)

var (
	buildTarget string
	buildCmdStr string
	buildDeps   []string
	buildResult string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Exercise the build-result cache for a (target, command, dependencies) tuple",
}

var buildCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether a build needs to rerun, and the cached result if not",
	Args:  cobra.NoArgs,
	RunE:  runBuildCheck,
}

var buildPutCmd = &cobra.Command{
	Use:   "put",
	Short: "Cache a build result; it outlives this process only if the build config sets badger_path",
	Args:  cobra.NoArgs,
	RunE:  runBuildPut,
}

func init() {
	for _, c := range []*cobra.Command{buildCheckCmd, buildPutCmd} {
		c.Flags().StringVar(&buildTarget, "target", "", "build target name (required)")
		c.Flags().StringVar(&buildCmdStr, "command", "", "build command string (required)")
		c.Flags().StringArrayVar(&buildDeps, "dep", nil, "dependency file path; repeatable, order matters")
		c.MarkFlagRequired("target")
		c.MarkFlagRequired("command")
	}
	buildPutCmd.Flags().StringVar(&buildResult, "result", "", "build result text to cache (required)")
	buildPutCmd.MarkFlagRequired("result")

	buildCmd.AddCommand(buildCheckCmd)
	buildCmd.AddCommand(buildPutCmd)
}

func newBuildCache() (*buildcache.BuildCache, error) {
	if buildCfgPath == "" {
		cfg := buildcache.DefaultConfig()
		cfg.CacheDir = cacheDir + "/build"
		return cfg.New()
	}
	cfg, err := buildcache.LoadConfig(buildCfgPath)
	if err != nil {
		return nil, err
	}
	return cfg.New()
}

type buildCheckResult struct {
	NeedsRebuild bool   `json:"needs_rebuild"`
	CachedResult string `json:"cached_result"`
}

func runBuildCheck(cmd *cobra.Command, args []string) error {
	bc, err := newBuildCache()
	if err != nil {
		return err
	}
	return printJSON(buildCheckResult{
		NeedsRebuild: bc.NeedsRebuild(buildTarget, buildCmdStr, buildDeps),
		CachedResult: bc.GetCachedBuildResult(buildTarget, buildCmdStr, buildDeps),
	})
}

func runBuildPut(cmd *cobra.Command, args []string) error {
	bc, err := newBuildCache()
	if err != nil {
		return err
	}
	ok := bc.CacheBuildResult(buildTarget, buildCmdStr, buildDeps, buildResult, time.Now().UnixMilli())
	return printJSON(struct {
		Cached bool `json:"cached"`
	}{Cached: ok})
}
