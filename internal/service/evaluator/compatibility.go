package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/pc-builder/internal/model"
)

// PSU sizing target: 30% above the estimated draw.
const psuHeadroomPercent = 130

type rule func(p model.Parts) []model.Issue

// rules run in display order.
var rules = []rule{
	socketRule,
	memoryTypeRule,
	memorySpeedRule,
	formFactorRule,
	gpuLengthRule,
	psuRule,
	coolerHeightRule,
	coolerTDPRule,
}

// CheckCompatibility evaluates every pairwise rule over the populated slots.
// A rule whose slots are not all populated yields nothing.
func CheckCompatibility(p model.Parts) model.CompatibilityReport {
	report := model.CompatibilityReport{
		Issues:   []model.Issue{},
		Warnings: []model.Issue{},
	}

	for _, r := range rules {
		for _, issue := range r(p) {
			switch issue.Severity {
			case model.SeverityCritical:
				report.Issues = append(report.Issues, issue)
			case model.SeverityWarning:
				report.Warnings = append(report.Warnings, issue)
			}
		}
	}

	report.IsCompatible = len(report.Issues) == 0
	report.HasWarnings = len(report.Warnings) > 0

	return report
}

func socketRule(p model.Parts) []model.Issue {
	if p.CPU == nil || p.Motherboard == nil {
		return nil
	}
	if p.CPU.Socket == "" || len(p.Motherboard.Sockets) == 0 || lo.Contains(p.Motherboard.Sockets, p.CPU.Socket) {
		return nil
	}

	return critical(
		fmt.Sprintf("CPU socket %s is not compatible with motherboard socket %s",
			p.CPU.Socket, strings.Join(p.Motherboard.Sockets, "/")),
		model.SlotCPU, model.SlotMotherboard,
	)
}

func memoryTypeRule(p model.Parts) []model.Issue {
	if p.Memory == nil || p.Motherboard == nil {
		return nil
	}
	if p.Memory.Type == "" || len(p.Motherboard.MemoryTypes) == 0 || lo.Contains(p.Motherboard.MemoryTypes, p.Memory.Type) {
		return nil
	}

	return critical(
		fmt.Sprintf("Memory type %s is not supported by the motherboard (%s)",
			p.Memory.Type, strings.Join(p.Motherboard.MemoryTypes, "/")),
		model.SlotMemory, model.SlotMotherboard,
	)
}

func memorySpeedRule(p model.Parts) []model.Issue {
	if p.Memory == nil || p.Motherboard == nil {
		return nil
	}
	if p.Memory.SpeedMHz <= 0 || p.Motherboard.MaxMemorySpeedMHz <= 0 {
		return nil
	}
	if p.Memory.SpeedMHz <= p.Motherboard.MaxMemorySpeedMHz {
		return nil
	}

	return warning(
		fmt.Sprintf("Memory speed %d MHz exceeds the motherboard maximum of %d MHz; it will run at the lower speed",
			p.Memory.SpeedMHz, p.Motherboard.MaxMemorySpeedMHz),
		model.SlotMemory, model.SlotMotherboard,
	)
}

func formFactorRule(p model.Parts) []model.Issue {
	if p.Motherboard == nil || p.Case == nil {
		return nil
	}
	if len(p.Case.MotherboardFormFactors) == 0 || p.Motherboard.FormFactor == "" {
		return nil
	}

	fits := lo.ContainsBy(p.Case.MotherboardFormFactors, func(ff string) bool {
		return strings.EqualFold(ff, p.Motherboard.FormFactor)
	})
	if fits {
		return nil
	}

	return critical(
		fmt.Sprintf("Motherboard form factor %s does not fit the case (supports %s)",
			p.Motherboard.FormFactor, strings.Join(p.Case.MotherboardFormFactors, ", ")),
		model.SlotMotherboard, model.SlotCase,
	)
}

func gpuLengthRule(p model.Parts) []model.Issue {
	if p.GPU == nil || p.Case == nil {
		return nil
	}
	if p.GPU.LengthMM <= 0 || p.Case.MaxGPULengthMM <= 0 || p.GPU.LengthMM <= p.Case.MaxGPULengthMM {
		return nil
	}

	return critical(
		fmt.Sprintf("Graphics card length (%smm) exceeds the case maximum (%smm)",
			formatNumber(p.GPU.LengthMM), formatNumber(p.Case.MaxGPULengthMM)),
		model.SlotGPU, model.SlotCase,
	)
}

func psuRule(p model.Parts) []model.Issue {
	if p.PSU == nil || p.PSU.Wattage <= 0 {
		return nil
	}

	total := TotalPower(p)
	switch {
	case p.PSU.Wattage < total:
		return critical(
			fmt.Sprintf("Power supply (%sW) is insufficient for the estimated %sW draw",
				formatNumber(p.PSU.Wattage), formatNumber(total)),
			model.SlotPSU,
		)
	case p.PSU.Wattage*100 < total*psuHeadroomPercent:
		recommended := math.Round(total * psuHeadroomPercent / 100)
		return warning(
			fmt.Sprintf("Power supply (%sW) leaves less than 30%% headroom; %sW or more is recommended",
				formatNumber(p.PSU.Wattage), formatNumber(recommended)),
			model.SlotPSU,
		)
	default:
		return nil
	}
}

func coolerHeightRule(p model.Parts) []model.Issue {
	if p.Cooler == nil || p.Case == nil {
		return nil
	}
	if p.Cooler.HeightMM <= 0 || p.Case.MaxCoolerHeightMM <= 0 || p.Cooler.HeightMM <= p.Case.MaxCoolerHeightMM {
		return nil
	}

	return critical(
		fmt.Sprintf("CPU cooler height (%smm) exceeds the case clearance (%smm)",
			formatNumber(p.Cooler.HeightMM), formatNumber(p.Case.MaxCoolerHeightMM)),
		model.SlotCooler, model.SlotCase,
	)
}

func coolerTDPRule(p model.Parts) []model.Issue {
	if p.CPU == nil || p.Cooler == nil {
		return nil
	}
	if p.CPU.TDPWatts <= 0 || p.Cooler.TDPRatingWatts <= 0 || p.CPU.TDPWatts <= p.Cooler.TDPRatingWatts {
		return nil
	}

	return warning(
		fmt.Sprintf("CPU TDP (%sW) exceeds the cooler rating (%sW); consider a stronger cooler",
			formatNumber(p.CPU.TDPWatts), formatNumber(p.Cooler.TDPRatingWatts)),
		model.SlotCPU, model.SlotCooler,
	)
}

func critical(msg string, slots ...model.Slot) []model.Issue {
	return []model.Issue{{Severity: model.SeverityCritical, Message: msg, Slots: slots}}
}

func warning(msg string, slots ...model.Slot) []model.Issue {
	return []model.Issue{{Severity: model.SeverityWarning, Message: msg, Slots: slots}}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
