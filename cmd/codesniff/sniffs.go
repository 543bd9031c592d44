package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codesniff/internal/sniffs"
)

var sniffsCmd = &cobra.Command{
	Use:   "sniffs",
	Short: "List built-in sniffs, or the ones the config enables",
	Args:  cobra.NoArgs,
	RunE:  runSniffsList,
}

func init() {
	sniffsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	sniffsCmd.Flags().Bool("enabled", false, "list only the sniffs enabled by the config, in dispatch order")
}

type sniffInfo struct {
	Code     string            `json:"code"`
	Summary  string            `json:"summary"`
	Fixable  bool              `json:"fixable"`
	Severity string            `json:"severity,omitempty"`
	Exclude  []string          `json:"exclude,omitempty"`
	Props    map[string]string `json:"properties,omitempty"`
}

func runSniffsList(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return usageError(fmt.Errorf("failed to get format flag: %w", err))
	}
	enabled, err := cmd.Flags().GetBool("enabled")
	if err != nil {
		return usageError(fmt.Errorf("failed to get enabled flag: %w", err))
	}

	var infos []sniffInfo
	if enabled {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return usageError(err)
		}
		regs, err := cfg.Registrations()
		if err != nil {
			return usageError(err)
		}
		for _, reg := range regs {
			summary, fixable := sniffs.Describe(reg.New())
			info := sniffInfo{Code: reg.Code, Summary: summary, Fixable: fixable, Exclude: reg.Exclude, Props: reg.Properties}
			if reg.Severity != nil {
				info.Severity = reg.Severity.String()
			}
			infos = append(infos, info)
		}
	} else {
		for _, e := range sniffs.Catalog() {
			summary, fixable := sniffs.Describe(e.New())
			infos = append(infos, sniffInfo{Code: e.Code, Summary: summary, Fixable: fixable})
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
		return renderSniffs(out, infos)
	}
	return usageError(fmt.Errorf("unknown format: %s", format))
}

func renderSniffs(out io.Writer, infos []sniffInfo) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		fixable := ""
		if info.Fixable {
			fixable = "fixable"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Code, fixable, info.Summary)
	}
	return tw.Flush()
}
