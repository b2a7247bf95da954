package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akarsch/netlens/internal/advise"
	"github.com/akarsch/netlens/internal/analyze"
	"github.com/akarsch/netlens/internal/collect"
	"github.com/akarsch/netlens/internal/output"
	"github.com/akarsch/netlens/internal/probe"
	"github.com/akarsch/netlens/internal/tui"
)

var opts struct {
	maxConnections int
	maxTimeWait    int
	maxFDPerProc   int
	displayLimit   int
	allowedPorts   []int
	privateRanges  []string
	format         string
	reportDir      string
	timeoutSecs    int
	targets        []string
	reusePortOK    bool
	noColor        bool
	watch          bool
}

var rootCmd = &cobra.Command{
	Use:   "netlens",
	Short: "Snapshot and analyze host network state",
	Long: "netlens snapshots the OS socket table, interface counters, routing\n" +
		"table and process table, flags anomalies against configurable\n" +
		"thresholds, and prints a sectioned diagnostic report.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&opts.maxConnections, "max-connections", analyze.DefaultMaxConnections, "flag when total connections exceed this")
	f.IntVar(&opts.maxTimeWait, "max-timewait", analyze.DefaultMaxTimeWait, "flag when TIME_WAIT sockets exceed this")
	f.IntVar(&opts.maxFDPerProc, "max-fds", analyze.DefaultMaxFDPerProc, "flag processes holding more descriptors than this")
	f.IntVar(&opts.displayLimit, "display-limit", analyze.DefaultDisplayLimit, "cap on listed unexpected ports")
	f.IntSliceVar(&opts.allowedPorts, "allowed-ports", analyze.DefaultAllowedPorts, "listen ports that are never flagged")
	f.StringSliceVar(&opts.privateRanges, "private-ranges", nil, "extra CIDRs treated as internal")
	f.StringVar(&opts.format, "format", "text", "report format: text or structured")
	f.StringVar(&opts.reportDir, "report-dir", "", "also write a timestamped report here")
	f.IntVar(&opts.timeoutSecs, "timeout", 3, "per-probe timeout in seconds")
	f.StringSliceVar(&opts.targets, "target", nil, "host to probe (ICMP + DNS), repeatable")
	f.BoolVar(&opts.reusePortOK, "reuse-port-ok", false, "tolerate one program sharing a listen port across processes")
	f.BoolVar(&opts.noColor, "no-color", false, "disable styled output")
	f.BoolVar(&opts.watch, "watch", false, "live view, refreshed periodically")
}

// Execute runs the root command. Anomaly findings are not failures:
// the exit code is non-zero only when no report could be produced.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "netlens:", err)
		os.Exit(1)
	}
}

func buildConfig() (analyze.Config, error) {
	cfg := analyze.DefaultConfig()
	cfg.MaxConnections = opts.maxConnections
	cfg.MaxTimeWait = opts.maxTimeWait
	cfg.MaxFDPerProc = opts.maxFDPerProc
	cfg.DisplayLimit = opts.displayLimit
	cfg.AllowedPorts = analyze.PortSet(opts.allowedPorts)
	cfg.ReusePortOK = opts.reusePortOK

	for _, cidr := range opts.privateRanges {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return cfg, fmt.Errorf("bad --private-ranges entry %q: %w", cidr, err)
		}
		cfg.PrivateNets = append(cfg.PrivateNets, ipnet)
	}
	return cfg, nil
}

func run(ctx context.Context) error {
	if opts.format != "text" && opts.format != "structured" {
		return fmt.Errorf("unknown format %q (want text or structured)", opts.format)
	}
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	collector := collect.NewSystemCollector()

	if opts.watch {
		return tui.Run(collector, cfg)
	}

	snap, err := collector.Collect(ctx)
	if err != nil {
		if errors.Is(err, collect.ErrUnavailable) {
			return fmt.Errorf("cannot collect on this host: %w", err)
		}
		return err
	}

	timeout := time.Duration(opts.timeoutSecs) * time.Second
	pinger := probe.Pinger{Timeout: timeout}
	resolver := probe.Resolver{Timeout: timeout}
	for _, target := range opts.targets {
		snap.Probes = append(snap.Probes, pinger.Ping(ctx, target))
		snap.Probes = append(snap.Probes, resolver.Lookup(ctx, target))
	}

	res := analyze.Analyze(snap, cfg)
	advisories := advise.Recommend(res)

	var report string
	if opts.format == "structured" {
		report, err = output.RenderJSON(snap, res, advisories)
		if err != nil {
			return err
		}
	} else {
		report = output.RenderText(snap, res, advisories, !opts.noColor)
	}
	fmt.Println(report)

	if opts.reportDir != "" {
		path, err := output.Persist(report, opts.reportDir, opts.format, snap.Taken)
		if err != nil {
			fmt.Fprintln(os.Stderr, "netlens: report not persisted:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Report saved to:", path)
		}
	}
	return nil
}
