package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
)

const defaultAPIURL = "http://localhost:8080/api"

type cli struct {
	out io.Writer
	v   *viper.Viper
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, v: viper.New()}
	c.v.SetEnvPrefix("MSPCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "mspctl",
		Short:         "Inspect the ACI compensation dashboard from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String("api-url", defaultAPIURL, "base URL of the API, prefix included")
	root.PersistentFlags().Bool("json", false, "output JSON")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	_ = c.v.BindPFlag("api-url", root.PersistentFlags().Lookup("api-url"))
	_ = c.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = c.v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(
		c.statsCmd(),
		c.indicatorsCmd(),
		c.associatesCmd(),
		c.missionsCmd(),
		c.compensationCmd(),
		c.exportCmd(),
		c.archiveCmd(),
	)
	return root
}

func (c *cli) client() *apiClient {
	return newAPIClient(c.v.GetString("api-url"), c.v.GetDuration("timeout"))
}

func (c *cli) table() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.SetStyle(table.StyleLight)
	return tw
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the compensation summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats models.Stats
			if err := c.client().getJSON(cmd.Context(), "/stats", nil, &stats); err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(stats)
			}
			tw := c.table()
			tw.AppendHeader(table.Row{"Axis", "Validated", "Total", "Compensation", "Max"})
			tw.AppendRow(table.Row{"Core", stats.ValidatedCoreIndicators, stats.TotalCoreIndicators, euros(stats.FixedCompensation), euros(stats.MaxFixedCompensation)})
			tw.AppendRow(table.Row{"Optional", stats.ValidatedOptionalIndicators, stats.TotalOptionalIndicators, euros(stats.VariableCompensation), euros(stats.MaxVariableCompensation)})
			tw.AppendFooter(table.Row{"Total", "", "", euros(stats.FixedCompensation + stats.VariableCompensation), euros(stats.MaxFixedCompensation + stats.MaxVariableCompensation)})
			tw.Render()
			return nil
		},
	}
}

func (c *cli) indicatorsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "List ACI indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			var indicators []models.Indicator
			if err := c.client().getJSON(cmd.Context(), "/indicators", nil, &indicators); err != nil {
				return err
			}
			if kind != "" {
				filtered := indicators[:0]
				for _, ind := range indicators {
					if string(ind.Type) == kind {
						filtered = append(filtered, ind)
					}
				}
				indicators = filtered
			}
			if c.v.GetBool("json") {
				return c.printJSON(indicators)
			}
			tw := c.table()
			tw.AppendHeader(table.Row{"ID", "Code", "Name", "Type", "Objective", "Max"})
			for _, ind := range indicators {
				tw.AppendRow(table.Row{ind.ID, ind.Code, ind.Name, ind.Type, ind.Objective, euros(ind.MaxCompensation)})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "only core or optional indicators")
	return cmd
}

func (c *cli) associatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "associates",
		Short: "List practice associates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var associates []models.Associate
			if err := c.client().getJSON(cmd.Context(), "/associates", nil, &associates); err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(associates)
			}
			tw := c.table()
			tw.AppendHeader(table.Row{"ID", "Name", "Profession", "Email", "Phone"})
			for _, a := range associates {
				tw.AppendRow(table.Row{a.ID, a.FullName(), a.Profession, a.Email, deref(a.Phone)})
			}
			tw.Render()
			return nil
		},
	}
}

func (c *cli) missionsCmd() *cobra.Command {
	var associateID, indicatorID int64
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List missions, optionally for one associate or indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/missions"
			switch {
			case associateID > 0 && indicatorID > 0:
				return fmt.Errorf("--associate and --indicator are mutually exclusive")
			case associateID > 0:
				path = "/associates/" + strconv.FormatInt(associateID, 10) + "/missions"
			case indicatorID > 0:
				path = "/indicators/" + strconv.FormatInt(indicatorID, 10) + "/missions"
			}

			var missions []models.Mission
			if err := c.client().getJSON(cmd.Context(), path, nil, &missions); err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(missions)
			}
			tw := c.table()
			tw.AppendHeader(table.Row{"ID", "Associate", "Indicator", "Status", "Current value", "Compensation"})
			for _, m := range missions {
				tw.AppendRow(table.Row{m.ID, m.AssociateID, m.IndicatorID, m.Status, deref(m.CurrentValue), euros(m.Compensation)})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().Int64Var(&associateID, "associate", 0, "associate id")
	cmd.Flags().Int64Var(&indicatorID, "indicator", 0, "indicator id")
	return cmd
}

func (c *cli) compensationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compensation",
		Short: "Show the per-indicator compensation report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.CompensationBreakdown
			if err := c.client().getJSON(cmd.Context(), "/compensation", nil, &report); err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(report)
			}
			tw := c.table()
			tw.AppendHeader(table.Row{"Code", "Indicator", "Type", "Current", "Max", "Validated"})
			for _, line := range report.Indicators {
				tw.AppendRow(table.Row{line.Code, line.Name, line.Type, euros(line.CurrentCompensation), euros(line.MaxCompensation), yesNo(line.Validated)})
			}
			t := report.Totals
			tw.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d%%", t.TotalPercentage), euros(t.TotalCompensation), euros(t.MaxTotalCompensation), ""})
			tw.Render()
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the compensation report as csv, pdf or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, filename, err := c.client().download(cmd.Context(), "/compensation/export", url.Values{"format": {format}})
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if out == "" {
				out = "compensation." + format
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(c.out, "wrote %s (%d bytes)\n", out, len(payload))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv, pdf or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to the server filename)")
	return cmd
}

func (c *cli) archiveCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive the compensation report and print its download link",
		RunE: func(cmd *cobra.Command, args []string) error {
			var archived dto.ArchivedExport
			if err := c.client().postJSON(cmd.Context(), "/compensation/archive", url.Values{"format": {format}}, &archived); err != nil {
				return err
			}
			if c.v.GetBool("json") {
				return c.printJSON(archived)
			}
			tw := c.table()
			tw.AppendRows([]table.Row{
				{"File", archived.Filename},
				{"Size", archived.Size},
				{"Download", archived.DownloadURL},
				{"Expires", archived.ExpiresAt.Local().Format(time.RFC1123)},
			})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pdf", "csv, pdf or xlsx")
	return cmd
}

func euros(amount int) string {
	return strconv.Itoa(amount) + " €"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
