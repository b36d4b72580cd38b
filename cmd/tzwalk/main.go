// Command tzwalk inspects compiled IANA timezone files.
//
// With a zone argument it decodes a single file and prints its header,
// data block and per-designation transition table:
//
//	tzwalk Europe/Zurich
//
// Without arguments it walks the whole zoneinfo tree and prints a
// summary line per file. Files that fail to decode are logged and
// skipped.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoneinfo-tools/tzwalk/internal/config"
	"github.com/zoneinfo-tools/tzwalk/internal/logging"
	"github.com/zoneinfo-tools/tzwalk/internal/zonewalk"
	"github.com/zoneinfo-tools/tzwalk/tzgroup"
	"github.com/zoneinfo-tools/tzwalk/tzif"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "tzwalk [zone]",
		Short: "Decode and inspect TZif timezone files",
		Long: `tzwalk decodes compiled IANA timezone files (TZif, RFC 8536).

Given a zone name it prints the decoded header, the 32-bit data block
and a table grouping transition times by designation. Without arguments
it decodes every file under the zoneinfo directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file")
	flags.String("zoneinfo", config.DefaultZoneinfoDir, "zoneinfo directory")
	flags.Int("workers", 0, "concurrent decodes during a walk (0 = one per CPU)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-format", "console", "log format: console or json")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	v := config.Viper()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"zoneinfo_dir": "zoneinfo",
		"debug":        "debug",
		"log_format":   "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if err := v.BindPFlag("workers", flags.Lookup("workers")); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFormat, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	if len(args) == 1 {
		return inspect(cfg, log, args[0])
	}
	return scan(cmd, cfg, log)
}

func inspect(cfg *config.Config, log *zap.Logger, zone string) error {
	path := filepath.Join(cfg.ZoneinfoDir, zone)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := tzif.Decode(b)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := tzif.Validate(f); err != nil {
		log.Warn("file violates RFC 8536 constraints", zap.String("path", path), zap.Error(err))
	}

	printHeader(f.Header)
	printBody(f.Body)

	table, err := tzgroup.Group(f.Body)
	if err != nil {
		return fmt.Errorf("grouping %s: %w", path, err)
	}
	printTable(table)
	return nil
}

func scan(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) error {
	results, err := zonewalk.Walk(cmd.Context(), cfg.ZoneinfoDir, cfg.Workers, log)
	if err != nil {
		return err
	}
	for _, r := range results {
		h := r.File.Header
		fmt.Printf("%-32s %s timecnt=%d typecnt=%d leapcnt=%d\n",
			r.Path, h.Version, h.Timecnt, h.Typecnt, h.Leapcnt)
	}
	log.Info("walk complete", zap.String("dir", cfg.ZoneinfoDir), zap.Int("decoded", len(results)))
	return nil
}

func printHeader(h tzif.Header) {
	fmt.Println("Header")
	fmt.Println("  version  =", h.Version)
	fmt.Println("  isutcnt  =", h.Isutcnt)
	fmt.Println("  isstdcnt =", h.Isstdcnt)
	fmt.Println("  leapcnt  =", h.Leapcnt)
	fmt.Println("  timecnt  =", h.Timecnt)
	fmt.Println("  typecnt  =", h.Typecnt)
	fmt.Println("  charcnt  =", h.Charcnt)
	fmt.Println()
}

func printBody(b tzif.Body) {
	fmt.Println("Data block")
	fmt.Printf("  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Printf("  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Printf("  LocalTimeTypes  (%d) = %+v\n", len(b.LocalTimeTypes), b.LocalTimeTypes)
	fmt.Printf("  Designations    (%d) = %v\n", len(b.Designations), strings.Split(b.Designations, "\x00"))
	fmt.Printf("  LeapSeconds     (%d) = %+v\n", len(b.LeapSeconds), b.LeapSeconds)
	fmt.Printf("  StandardWall    (%d) = %v\n", len(b.StandardWall), b.StandardWall)
	fmt.Printf("  UTLocal         (%d) = %v\n", len(b.UTLocal), b.UTLocal)
	fmt.Println()
}

func printTable(table map[string]*tzgroup.Timezone) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Timezones")
	for _, name := range names {
		tz := table[name]
		fmt.Printf("  %-8s utoff=%-6d dst=%-5v transitions (%d) = %v\n",
			tz.Name, tz.Utoff, tz.Dst, len(tz.Transitions), tz.Transitions)
	}
}
