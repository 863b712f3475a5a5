package evaluator

import (
	"math"

	"github.com/you-humble/pc-builder/internal/model"
)

// Category weights; together they add up to 100.
const (
	cpuWeight     = 30
	gpuWeight     = 40
	memoryWeight  = 15
	storageWeight = 10
	coolerWeight  = 5

	defaultClockGHz     = 3
	defaultCores        = 4
	defaultGPUClockMHz  = 1500
	defaultMemorySpeed  = 3200
	nonNVMeStorageScore = 5
)

var tiers = []struct {
	min  int
	tier model.Tier
}{
	{90, model.TierExtreme},
	{75, model.TierHighEnd},
	{60, model.TierMidRange},
	{40, model.TierBudget},
}

// PerformanceScore rates the build relative to the categories it actually
// contains: an absent category adds to neither the achieved nor the
// possible total.
func PerformanceScore(p model.Parts) model.PerformanceAssessment {
	var achieved, possible float64

	if p.CPU != nil {
		clock := orDefault(p.CPU.ClockGHz, defaultClockGHz)
		cores := p.CPU.Cores
		if cores <= 0 {
			cores = defaultCores
		}
		achieved += math.Min(cpuWeight, clock*float64(cores)/10)
		possible += cpuWeight
	}
	if p.GPU != nil {
		clock := orDefault(p.GPU.BoostClockMHz, defaultGPUClockMHz)
		achieved += math.Min(gpuWeight, clock/50)
		possible += gpuWeight
	}
	if p.Memory != nil {
		speed := p.Memory.SpeedMHz
		if speed <= 0 {
			speed = defaultMemorySpeed
		}
		achieved += math.Min(memoryWeight, float64(speed)/200*float64(moduleCount(p.Memory))/10)
		possible += memoryWeight
	}
	if p.Storage != nil {
		if p.Storage.NVMe {
			achieved += storageWeight
		} else {
			achieved += nonNVMeStorageScore
		}
		possible += storageWeight
	}
	if p.Cooler != nil {
		achieved += coolerWeight
		possible += coolerWeight
	}

	if possible == 0 {
		return model.PerformanceAssessment{Score: 0, Tier: model.TierEntryLevel}
	}

	score := int(math.Floor(100*achieved/possible + 0.5))
	return model.PerformanceAssessment{Score: score, Tier: tierFor(score)}
}

func tierFor(score int) model.Tier {
	for _, t := range tiers {
		if score >= t.min {
			return t.tier
		}
	}
	return model.TierEntryLevel
}
