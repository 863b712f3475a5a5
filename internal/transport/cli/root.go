package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/you-humble/pc-builder/internal/model"
)

const toolVersion = "1.0.0"

type BuildService interface {
	SelectedComponents() model.Build
	SetComponent(ctx context.Context, slot model.Slot, rec model.Record) error
	ClearComponent(ctx context.Context, slot model.Slot) error
	Reset(ctx context.Context)
	TotalPrice() float64
	TotalPower() float64
	CheckCompatibility() model.CompatibilityReport
	PerformanceScore() model.PerformanceAssessment
}

type CompareService interface {
	Add(ctx context.Context, category model.Slot, rec model.Record) error
	Remove(ctx context.Context, id string)
	Clear(ctx context.Context)
	Contains(id string) bool
	Category() (model.Slot, bool)
	CanAddMore() bool
	Items() []model.CompareItem
}

type handler struct {
	build   BuildService
	compare CompareService

	asJSON bool
}

// NewRootCmd assembles the command tree over already loaded services.
func NewRootCmd(build BuildService, compare CompareService) *cobra.Command {
	h := &handler{build: build, compare: compare}

	rootCmd := &cobra.Command{
		Use:     "pcbuild",
		Short:   "PC build planner",
		Version: toolVersion,
		Long: `pcbuild keeps one PC build of twelve component slots and a short
comparison list, both saved between runs.

Slots: cpu, cooler, motherboard, memory, storage, gpu, case, psu,
monitor, expansion, peripherals, accessories.

Components are raw catalog records given as a JSON object, e.g.
  pcbuild build set cpu '{"name":"Ryzen 5 7600","socket":"AM5","tdp":65,"price":199}'
  pcbuild build set gpu --file gpu.json
  pcbuild build report`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&h.asJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		h.buildCmd(),
		h.compareCmd(),
	)

	return rootCmd
}
