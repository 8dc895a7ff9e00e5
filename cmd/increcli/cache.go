package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"incremental-engine/internal/compcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the per-unit compilation cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print hit/miss/size stats for the compilation cache",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Invalidate every entry in the compilation cache and persist the result",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

type cacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	Size    int     `json:"size"`
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c := compcache.New(filepath.Join(cacheDir, "compiled"))
	if err := c.Load(); err != nil {
		return err
	}
	return printJSON(cacheStats{
		Hits:    c.Hits(),
		Misses:  c.Misses(),
		HitRate: c.HitRate(),
		Size:    c.Size(),
	})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c := compcache.New(filepath.Join(cacheDir, "compiled"))
	if err := c.Load(); err != nil {
		return err
	}
	c.InvalidateAll()
	return c.Save()
}
