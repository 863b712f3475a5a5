package evaluator

import "github.com/you-humble/pc-builder/internal/model"

// Per-category power estimates in watts.
const (
	defaultCPUWatts    = 65
	defaultGPUWatts    = 150
	motherboardWatts   = 50
	memoryModuleWatts  = 3
	storageWatts       = 5
	activeCoolerWatts  = 10
	passiveCoolerWatts = 5
	caseWatts          = 30

	defaultModuleCount = 2
)

// TotalPower estimates the peak draw of the build. Each category
// contributes independently; empty slots contribute nothing.
func TotalPower(p model.Parts) float64 {
	var total float64

	if p.CPU != nil {
		total += orDefault(p.CPU.TDPWatts, defaultCPUWatts)
	}
	if p.GPU != nil {
		total += orDefault(p.GPU.TDPWatts, defaultGPUWatts)
	}
	if p.Motherboard != nil {
		total += motherboardWatts
	}
	if p.Memory != nil {
		total += float64(memoryModuleWatts * moduleCount(p.Memory))
	}
	if p.Storage != nil {
		total += storageWatts
	}
	if p.Cooler != nil {
		if p.Cooler.HasFan {
			total += activeCoolerWatts
		} else {
			total += passiveCoolerWatts
		}
	}
	if p.Case != nil {
		total += caseWatts
	}

	return total
}

func moduleCount(m *model.MemorySpec) int {
	if m.Modules > 0 {
		return m.Modules
	}
	return defaultModuleCount
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
