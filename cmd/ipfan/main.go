// Command ipfan fans an IP lookup out across dozens of public
// intelligence providers concurrently and renders the results as a table,
// a JSON document, or a pipe-delimited stream for a GUI front-end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/ipfan/applog"
	"github.com/example/ipfan/buildinfo"
	"github.com/example/ipfan/config"
	"github.com/example/ipfan/dispatcher"
	"github.com/example/ipfan/exporter"
	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/registry"
	"github.com/example/ipfan/render"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/store"
	"github.com/example/ipfan/stream"
	"github.com/example/ipfan/upload"
	"github.com/example/ipfan/usage"
)

const asciiArt = `  ___ ___     __
 |_ _| _ \   / _|__ _ _ _      __
  | ||  _/  |  _/ _` + "`" + ` | ' \    /
 |___|_|    |_| \__,_|_||_|
`

func main() {
	flags := config.Flags{}
	var providerOnly []string
	var timeout time.Duration
	var configFile string

	root := &cobra.Command{
		Use:          "ipfan",
		Short:        "Fan an IP lookup out across many intelligence providers concurrently",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, providerOnly, timeout, configFile)
		},
	}

	root.Flags().BoolVar(&flags.All, "all", false, "show all information")
	root.Flags().BoolVar(&flags.Provider, "provider", false, "show provider name")
	root.Flags().BoolVar(&flags.IP, "ip", false, "show IP address")
	root.Flags().BoolVar(&flags.ASN, "asn", false, "show ASN")
	root.Flags().BoolVar(&flags.ISP, "isp", false, "show ISP name")
	root.Flags().BoolVar(&flags.Country, "country", false, "show country")
	root.Flags().BoolVar(&flags.Region, "region", false, "show region")
	root.Flags().BoolVar(&flags.City, "city", false, "show city")
	root.Flags().BoolVar(&flags.Coordinates, "coordinates", false, "show coordinates")
	root.Flags().BoolVar(&flags.TimeZone, "time-zone", false, "show time zone")
	root.Flags().BoolVar(&flags.Risk, "risk", false, "show risk score")
	root.Flags().BoolVar(&flags.Tags, "tags", false, "show risk tags")
	root.Flags().BoolVar(&flags.Time, "time", false, "show processing time")
	root.Flags().StringVar(&flags.SetIP, "set-ip", "", "query a specific IP instead of the local address")
	root.Flags().BoolVar(&flags.Cls, "cls", false, "clear the screen before printing")
	root.Flags().BoolVar(&flags.NoLogo, "no-logo", false, "suppress the startup banner")
	root.Flags().BoolVar(&flags.NoUpload, "no-upload", false, "skip the usage counter and result upload")
	root.Flags().BoolVar(&flags.Logger, "logger", true, "enable log output on stderr")
	root.Flags().BoolVar(&flags.JSON, "json", false, "emit a JSON array instead of a table")
	root.Flags().BoolVar(&flags.SpecialForGUI, "special-for-gui", false, "emit the pipe-delimited stream a GUI front-end consumes")

	root.Flags().StringSliceVar(&providerOnly, "provider-only", nil, "restrict the run to these providers by name")
	root.Flags().DurationVar(&timeout, "timeout", 0, "override the per-request timeout (default 5s)")
	root.Flags().StringVar(&configFile, "config", defaultConfigPath(), "path to the provider API key YAML file")
	root.Flags().StringVar(&historyFile, "history-file", defaultHistoryPath(), "JSON Lines file to append this run's results to")
	root.Flags().BoolVar(&noHistory, "no-history", false, "don't persist this run to the history file")

	root.AddCommand(historyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

var historyFile string
var noHistory bool

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ipfan", "history.jsonl")
}

// historyCmd exposes the persisted run log: list past runs or re-export
// them as CSV/JSONL without re-querying any provider.
func historyCmd() *cobra.Command {
	var format string
	var path string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or export previously run lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.NewJSONL(path)
			records, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			switch format {
			case "csv":
				return exporter.ToCSV(records, os.Stdout)
			case "jsonl":
				return exporter.ToJSONL(records, os.Stdout)
			default:
				for _, r := range records {
					target := "(local)"
					if r.Target != nil {
						target = r.Target.String()
					}
					fmt.Printf("%s  %s  %s  %d results\n", r.RunID, r.Timestamp.Format(time.RFC3339), target, len(r.Results))
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "export format: csv or jsonl (default: a one-line-per-run summary)")
	cmd.Flags().StringVar(&path, "history-file", defaultHistoryPath(), "JSON Lines history file to read")
	return cmd
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ipfan", "providers.yaml")
}

func run(ctx context.Context, flags config.Flags, providerOnly []string, timeout time.Duration, configFile string) error {
	runID := uuid.New()
	runStarted := time.Now()

	if timeout > 0 {
		httpclient.SetTimeout(timeout)
	}

	var transcript strings.Builder
	if !config.EffectiveLogger(flags) {
		applog.Disable()
	} else {
		applog.SetOutput(io.MultiWriter(os.Stderr, &transcript))
	}
	applog.WithField("run_id", runID).Info("starting run")

	if flags.Cls {
		fmt.Print("\033[H\033[2J")
	}
	if !config.EffectiveNoLogo(flags) {
		fmt.Println(asciiArt)
	}

	if !config.EffectiveNoUpload(flags) {
		counter := &usage.Counter{}
		if today, all, err := counter.Fetch(ctx); err == nil {
			fmt.Printf("Usage: %d / %d\n", today, all)
		} else {
			applog.WithField("error", err).Debug("usage counter unavailable")
		}
	}

	var target *netip.Addr
	if flags.SetIP != "" {
		addr, err := netip.ParseAddr(flags.SetIP)
		if err != nil {
			return fmt.Errorf("invalid --set-ip value %q: %w", flags.SetIP, err)
		}
		target = &addr
	}

	keys, err := config.LoadKeyStore(configFile)
	if err != nil {
		applog.WithField("error", err).Warn("failed to load provider config file, continuing without it")
		keys = nil
	}

	reg := registry.Named(registry.All(keys), providerOnly)
	results := dispatcher.Collect(dispatcher.Run(ctx, reg, target))
	if !flags.SpecialForGUI {
		order := make(map[string]int, len(reg))
		for i, a := range reg {
			order[a.Name()] = i
		}
		sort.SliceStable(results, func(i, j int) bool {
			return order[results[i].Provider] < order[results[j].Provider]
		})
	}

	if !noHistory && historyFile != "" {
		rec := store.Record{RunID: runID.String(), Timestamp: runStarted, Target: target, Results: results}
		if err := store.NewJSONL(historyFile).Save(ctx, rec); err != nil {
			applog.WithField("error", err).Debug("failed to persist run history")
		}
	}

	for _, r := range results {
		if r.Success {
			applog.WithProvider(r.Provider).Debug("lookup succeeded")
		} else {
			applog.WithProvider(r.Provider).WithField("error", r.Err.Error()).Warn("lookup failed")
		}
	}

	vis := config.Resolve(flags)

	switch {
	case flags.SpecialForGUI:
		enc := stream.NewEncoder(os.Stdout)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
	case flags.JSON:
		out, err := marshalJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		transcript.Write(out)
	default:
		table := render.Table(results, vis)
		fmt.Print(table)
		transcript.WriteString(table)
	}

	if !config.EffectiveNoUpload(flags) {
		u := &upload.Uploader{}
		if url, err := u.Post(ctx, transcript.String()); err == nil {
			applog.WithField("url", url).Info("result uploaded")
		} else if err != upload.ErrDisabled {
			applog.WithField("error", err).Warn("result upload failed")
		}
	}

	_ = buildinfo.Version
	return nil
}

// jsonResult is the wire shape for --json output. Every optional field is
// explicitly nullable rather than omitted, so absent values serialize as
// null. It follows the canonical Result model except that coordinates are
// flattened into region.latitude/region.longitude, and the timing is
// reported in whole milliseconds as used_time_ms.
type jsonResult struct {
	Provider         string           `json:"provider"`
	Success          bool             `json:"success"`
	Error            *string          `json:"error"`
	IP               *string          `json:"ip"`
	AutonomousSystem *jsonAS          `json:"autonomous_system"`
	Region           *jsonRegion      `json:"region"`
	Risk             *jsonRisk        `json:"risk"`
	UsedTimeMs       int64            `json:"used_time_ms"`
}

type jsonAS struct {
	Number uint32 `json:"number"`
	Name   string `json:"name"`
}

type jsonRegion struct {
	Country     *string `json:"country"`
	Region      *string `json:"region"`
	City        *string `json:"city"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	TimeZone    *string `json:"time_zone"`
}

type jsonRisk struct {
	Score *uint8   `json:"score"`
	Tags  []string `json:"tags"`
}

func marshalJSON(results []result.Result) ([]byte, error) {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{
			Provider:   r.Provider,
			Success:    r.Success,
			UsedTimeMs: r.UsedTime / 1_000_000,
		}
		if !r.Success {
			msg := r.Err.Error()
			jr.Error = &msg
		}
		if r.IP != nil {
			ip := r.IP.String()
			jr.IP = &ip
		}
		if r.AutonomousSystem != nil {
			jr.AutonomousSystem = &jsonAS{Number: r.AutonomousSystem.Number, Name: r.AutonomousSystem.Name}
		}
		if r.Region != nil {
			jreg := &jsonRegion{
				Country:  r.Region.Country,
				Region:   r.Region.Province,
				City:     r.Region.City,
				TimeZone: r.Region.TimeZone,
			}
			if r.Region.Coordinates != nil {
				jreg.Latitude = &r.Region.Coordinates.Lat
				jreg.Longitude = &r.Region.Coordinates.Lon
			}
			jr.Region = jreg
		}
		if r.Risk != nil {
			tags := make([]string, 0, len(r.Risk.Tags))
			for _, t := range r.Risk.Tags {
				tags = append(tags, t.String())
			}
			jr.Risk = &jsonRisk{Score: r.Risk.Score, Tags: tags}
		}
		out = append(out, jr)
	}
	return json.MarshalIndent(out, "", "  ")
}
