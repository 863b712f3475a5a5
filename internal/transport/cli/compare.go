package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
)

func (h *handler) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage the product comparison list",
	}

	var file string
	addCmd := &cobra.Command{
		Use:   "add <category> [record-json|-]",
		Short: "Add a product to the comparison list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := model.ParseSlot(args[0])
			if err != nil {
				return err
			}
			rec, err := readRecord(cmd, args[1:], file)
			if err != nil {
				return err
			}
			if err := h.compare.Add(cmd.Context(), category, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", displayName(rec))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&file, "file", "f", "", "Read the record from a JSON file ('-' for stdin)")

	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a product from the comparison list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !h.compare.Contains(args[0]) {
					return fmt.Errorf("%q is not in the comparison list", args[0])
				}
				h.compare.Remove(cmd.Context(), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the comparison list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				h.compare.Clear(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the comparison list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return h.listCompare(cmd.OutOrStdout())
			},
		},
	)

	return cmd
}

func (h *handler) listCompare(w io.Writer) error {
	items := h.compare.Items()
	if h.asJSON {
		return writeJSON(w, items)
	}

	category, ok := h.compare.Category()
	if !ok {
		fmt.Fprintln(w, "Comparison list is empty")
		return nil
	}

	fmt.Fprintf(w, "Comparing %s (%d/%d)\n", category, len(items), model.MaxCompareItems)
	for _, it := range items {
		fmt.Fprintf(w, "  %-24s %s  $%.2f\n", it.ID, displayName(it.Record), converter.RecordPrice(it.Record))
	}
	if !h.compare.CanAddMore() {
		fmt.Fprintln(w, "List is full")
	}
	return nil
}
