package cli

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
)

func (h *handler) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Inspect and edit the current build",
	}

	var file string
	setCmd := &cobra.Command{
		Use:   "set <slot> [record-json|-]",
		Short: "Put a component into a slot, replacing what was there",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := model.ParseSlot(args[0])
			if err != nil {
				return err
			}
			rec, err := readRecord(cmd, args[1:], file)
			if err != nil {
				return err
			}
			if err := h.build.SetComponent(cmd.Context(), slot, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", slot, displayName(rec))
			return nil
		},
	}
	setCmd.Flags().StringVarP(&file, "file", "f", "", "Read the record from a JSON file ('-' for stdin)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the selected components",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return h.showBuild(cmd.OutOrStdout())
			},
		},
		setCmd,
		&cobra.Command{
			Use:   "clear <slot>",
			Short: "Empty one slot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				slot, err := model.ParseSlot(args[0])
				if err != nil {
					return err
				}
				return h.build.ClearComponent(cmd.Context(), slot)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Empty every slot and forget the saved build",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				h.build.Reset(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "price",
			Short: "Print the total price",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return h.printValue(cmd.OutOrStdout(), "price", h.build.TotalPrice(), "$%.2f\n")
			},
		},
		&cobra.Command{
			Use:   "power",
			Short: "Print the estimated power draw",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return h.printValue(cmd.OutOrStdout(), "power", h.build.TotalPower(), "%.0fW\n")
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Run the compatibility checks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				report := h.build.CheckCompatibility()
				if h.asJSON {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			},
		},
		&cobra.Command{
			Use:   "score",
			Short: "Print the performance score and tier",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				score := h.build.PerformanceScore()
				if h.asJSON {
					return writeJSON(cmd.OutOrStdout(), score)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d/100 (%s)\n", score.Score, score.Tier)
				return nil
			},
		},
		&cobra.Command{
			Use:   "report",
			Short: "Print price, power, compatibility and score together",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return h.report(cmd.OutOrStdout())
			},
		},
	)

	return cmd
}

type buildReport struct {
	TotalPrice    float64                     `json:"totalPrice"`
	TotalPower    float64                     `json:"totalPower"`
	Compatibility model.CompatibilityReport   `json:"compatibility"`
	Performance   model.PerformanceAssessment `json:"performance"`
}

func (h *handler) showBuild(w io.Writer) error {
	b := h.build.SelectedComponents()
	if h.asJSON {
		return writeJSON(w, b)
	}

	for _, slot := range model.AllSlots() {
		rec := b[slot]
		if rec == nil {
			fmt.Fprintf(w, "%-12s -\n", slot)
			continue
		}
		fmt.Fprintf(w, "%-12s %s  $%.2f\n", slot, displayName(rec), converter.RecordPrice(rec))
	}
	return nil
}

func (h *handler) report(w io.Writer) error {
	r := buildReport{
		TotalPrice:    h.build.TotalPrice(),
		TotalPower:    h.build.TotalPower(),
		Compatibility: h.build.CheckCompatibility(),
		Performance:   h.build.PerformanceScore(),
	}
	if h.asJSON {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "Total price:  $%.2f\n", r.TotalPrice)
	fmt.Fprintf(w, "Total power:  %.0fW\n", r.TotalPower)
	fmt.Fprintf(w, "Performance:  %d/100 (%s)\n", r.Performance.Score, r.Performance.Tier)
	printReport(w, r.Compatibility)
	return nil
}

func (h *handler) printValue(w io.Writer, name string, v float64, format string) error {
	if h.asJSON {
		return writeJSON(w, map[string]float64{name: v})
	}
	fmt.Fprintf(w, format, v)
	return nil
}

func printReport(w io.Writer, r model.CompatibilityReport) {
	if r.IsCompatible && !r.HasWarnings {
		fmt.Fprintln(w, "Compatible: no issues found")
		return
	}
	if r.IsCompatible {
		fmt.Fprintln(w, "Compatible with warnings")
	} else {
		fmt.Fprintln(w, "Not compatible")
	}

	for _, is := range append(lo.Clone(r.Issues), r.Warnings...) {
		slots := lo.Map(is.Slots, func(s model.Slot, _ int) string { return s.String() })
		fmt.Fprintf(w, "  [%s] %s (%v)\n", is.Severity, is.Message, slots)
	}
}

func displayName(rec model.Record) string {
	if name := converter.RecordName(rec); name != "" {
		return name
	}
	if id := converter.RecordID(rec); id != "" {
		return id
	}
	return "(unnamed)"
}
