package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
)

func buildOf(recs map[model.Slot]model.Record) model.Build {
	b := model.NewBuild()
	for s, r := range recs {
		b[s] = r
	}
	return b
}

func TestTotalPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build model.Build
		want  float64
	}{
		{
			name:  "empty build",
			build: model.NewBuild(),
			want:  0,
		},
		{
			name: "priceValue string fallback",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotMonitor: {"priceValue": "49.99"},
			}),
			want: 49.99,
		},
		{
			name: "sums every slot, including non-core ones",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotCPU:         {"price": 199.0},
				model.SlotGPU:         {"priceUsd": "499.5"},
				model.SlotPeripherals: {"price": 0.0, "priceValue": 25.0},
				model.SlotAccessories: {"price": "free"},
			}),
			want: 723.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, TotalPrice(tt.build), 1e-9)
		})
	}
}

func TestTotalPower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build model.Build
		want  float64
	}{
		{
			name:  "empty build draws nothing",
			build: model.NewBuild(),
			want:  0,
		},
		{
			name: "full core build",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotCPU:         {"tdpWatts": 95.0},
				model.SlotGPU:         {"tdpWatts": 220.0},
				model.SlotMotherboard: {"name": "board"},
				model.SlotMemory:      {"modules": 2.0},
				model.SlotStorage:     {"name": "ssd"},
				model.SlotCooler:      {"fanRPM": 1200.0},
				model.SlotCase:        {"name": "case"},
			}),
			want: 416,
		},
		{
			name: "defaults for unknown tdp, kit string and passive cooler",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotCPU:    {"name": "cpu"},
				model.SlotGPU:    {"tdp": "n/a"},
				model.SlotMemory: {"modules": "4x8GB"},
				model.SlotCooler: {"height": 45.0},
			}),
			want: 65 + 150 + 12 + 5,
		},
		{
			name: "memory without module info counts two modules",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotMemory: {"type": "DDR4"},
			}),
			want: 6,
		},
		{
			name: "psu and peripherals add nothing",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotPSU:         {"wattage": 750.0},
				model.SlotPeripherals: {"name": "mouse"},
			}),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, TotalPower(converter.PartsFromBuild(tt.build)), 1e-9)
		})
	}
}

func TestCheckCompatibility_SocketMismatch(t *testing.T) {
	t.Parallel()

	report := CheckCompatibility(converter.PartsFromBuild(buildOf(map[model.Slot]model.Record{
		model.SlotCPU:         {"socket": "AM5"},
		model.SlotMotherboard: {"socket": "LGA1700"},
	})))

	require.Len(t, report.Issues, 1)
	assert.Equal(t, model.SeverityCritical, report.Issues[0].Severity)
	assert.Equal(t, []model.Slot{model.SlotCPU, model.SlotMotherboard}, report.Issues[0].Slots)
	assert.Contains(t, report.Issues[0].Message, "AM5")
	assert.Contains(t, report.Issues[0].Message, "LGA1700")
	assert.False(t, report.IsCompatible)
	assert.Empty(t, report.Warnings)
	assert.False(t, report.HasWarnings)
}

func TestCheckCompatibility_PSUHeadroom(t *testing.T) {
	t.Parallel()

	// cpu 220 + gpu 200 + motherboard 50 + case 30 = 500W
	base := map[model.Slot]model.Record{
		model.SlotCPU:         {"tdpWatts": 220.0},
		model.SlotGPU:         {"tdpWatts": 200.0},
		model.SlotMotherboard: {"name": "board"},
		model.SlotCase:        {"name": "case"},
	}

	tests := []struct {
		name         string
		wattage      float64
		wantCritical int
		wantWarnings int
	}{
		{name: "400W is insufficient", wattage: 400, wantCritical: 1},
		{name: "500W covers the draw but lacks headroom", wattage: 500, wantWarnings: 1},
		{name: "549W lacks headroom", wattage: 549, wantWarnings: 1},
		{name: "650W is exactly enough", wattage: 650},
		{name: "1000W is plenty", wattage: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := buildOf(base)
			b[model.SlotPSU] = model.Record{"wattage": tt.wattage}

			p := converter.PartsFromBuild(b)
			require.InDelta(t, 500, TotalPower(p), 1e-9)

			report := CheckCompatibility(p)
			assert.Len(t, report.Issues, tt.wantCritical)
			assert.Len(t, report.Warnings, tt.wantWarnings)
			assert.Equal(t, tt.wantCritical == 0, report.IsCompatible)

			for _, is := range append(report.Issues, report.Warnings...) {
				assert.Equal(t, []model.Slot{model.SlotPSU}, is.Slots)
			}
		})
	}
}

func TestCheckCompatibility_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		build        map[model.Slot]model.Record
		wantCritical []string
		wantWarnings []string
	}{
		{
			name: "matching build has no findings",
			build: map[model.Slot]model.Record{
				model.SlotCPU:         {"socket": "AM5", "tdp": 105.0},
				model.SlotMotherboard: {"socket": "AM5", "memoryType": "DDR5", "formFactor": "ATX", "maxMemorySpeed": 6400.0},
				model.SlotMemory:      {"type": "DDR5", "speed": "6000MHz"},
				model.SlotCase:        {"motherboardFormFactor": []any{"ATX", "Micro ATX"}, "maximumVideoCardLength": 400.0, "maximumCpuCoolerHeight": 170.0},
				model.SlotGPU:         {"length": 320.0},
				model.SlotCooler:      {"height": 160.0, "tdpRating": 220.0},
			},
		},
		{
			name: "memory type mismatch",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"memoryType": "DDR5"},
				model.SlotMemory:      {"type": "DDR4"},
			},
			wantCritical: []string{"Memory type DDR4"},
		},
		{
			name: "memory faster than board is a warning",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"maxMemorySpeed": "5600MHz"},
				model.SlotMemory:      {"speed": "6400MHz"},
			},
			wantWarnings: []string{"6400 MHz"},
		},
		{
			name: "ddr generation prefix is not part of the speed",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"maxMemorySpeed": 6400.0},
				model.SlotMemory:      {"speed": "DDR5-6000"},
			},
		},
		{
			name: "ddr prefixed speed above the board maximum",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"maxMemorySpeed": "DDR5-5600"},
				model.SlotMemory:      {"speed": "DDR5-6400"},
			},
			wantWarnings: []string{"6400 MHz exceeds the motherboard maximum of 5600 MHz"},
		},
		{
			name: "board listing several sockets accepts any of them",
			build: map[model.Slot]model.Record{
				model.SlotCPU:         {"socket": "AM5"},
				model.SlotMotherboard: {"socket": []any{"AM4", "AM5"}},
			},
		},
		{
			name: "cpu socket outside the board list",
			build: map[model.Slot]model.Record{
				model.SlotCPU:         {"socket": "LGA1700"},
				model.SlotMotherboard: {"socket": []any{"AM4", "AM5"}},
			},
			wantCritical: []string{"LGA1700 is not compatible with motherboard socket AM4/AM5"},
		},
		{
			name: "board listing several memory types",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"memoryType": []any{"DDR4", "DDR5"}},
				model.SlotMemory:      {"type": "DDR4"},
			},
		},
		{
			name: "form factor does not fit, compared case-insensitively",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"formFactor": "E-ATX"},
				model.SlotCase:        {"motherboardFormFactor": "atx, micro atx"},
			},
			wantCritical: []string{"E-ATX"},
		},
		{
			name: "form factor match ignores letter case",
			build: map[model.Slot]model.Record{
				model.SlotMotherboard: {"formFactor": "Micro ATX"},
				model.SlotCase:        {"motherboardFormFactor": "ATX, micro atx"},
			},
		},
		{
			name: "gpu too long",
			build: map[model.Slot]model.Record{
				model.SlotGPU:  {"length": 340.0},
				model.SlotCase: {"maximumVideoCardLength": 330.0},
			},
			wantCritical: []string{"340mm"},
		},
		{
			name: "cooler too tall and underrated",
			build: map[model.Slot]model.Record{
				model.SlotCPU:    {"tdp": 170.0},
				model.SlotCooler: {"height": 170.0, "tdpRating": 150.0},
				model.SlotCase:   {"maximumCpuCoolerHeight": 160.0},
			},
			wantCritical: []string{"170mm"},
			wantWarnings: []string{"170W"},
		},
		{
			name: "missing fields skip their rules",
			build: map[model.Slot]model.Record{
				model.SlotCPU:         {"name": "cpu"},
				model.SlotMotherboard: {"name": "board"},
				model.SlotMemory:      {"name": "ram"},
				model.SlotCase:        {"name": "case"},
				model.SlotGPU:         {"name": "gpu"},
				model.SlotCooler:      {"name": "cooler"},
				model.SlotPSU:         {"name": "psu"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := CheckCompatibility(converter.PartsFromBuild(buildOf(tt.build)))

			require.Len(t, report.Issues, len(tt.wantCritical))
			for i, sub := range tt.wantCritical {
				assert.Equal(t, model.SeverityCritical, report.Issues[i].Severity)
				assert.Contains(t, report.Issues[i].Message, sub)
			}
			require.Len(t, report.Warnings, len(tt.wantWarnings))
			for i, sub := range tt.wantWarnings {
				assert.Equal(t, model.SeverityWarning, report.Warnings[i].Severity)
				assert.Contains(t, report.Warnings[i].Message, sub)
			}
			assert.Equal(t, len(tt.wantCritical) == 0, report.IsCompatible)
			assert.Equal(t, len(tt.wantWarnings) > 0, report.HasWarnings)
		})
	}
}

func TestCheckCompatibility_RuleOrder(t *testing.T) {
	t.Parallel()

	report := CheckCompatibility(converter.PartsFromBuild(buildOf(map[model.Slot]model.Record{
		model.SlotCPU:         {"socket": "AM4"},
		model.SlotMotherboard: {"socket": "AM5", "memoryType": "DDR5", "formFactor": "ATX"},
		model.SlotMemory:      {"type": "DDR4"},
		model.SlotCase:        {"motherboardFormFactor": "Mini ITX", "maximumVideoCardLength": 200.0},
		model.SlotGPU:         {"length": 300.0},
	})))

	require.Len(t, report.Issues, 4)
	assert.Equal(t, []model.Slot{model.SlotCPU, model.SlotMotherboard}, report.Issues[0].Slots)
	assert.Equal(t, []model.Slot{model.SlotMemory, model.SlotMotherboard}, report.Issues[1].Slots)
	assert.Equal(t, []model.Slot{model.SlotMotherboard, model.SlotCase}, report.Issues[2].Slots)
	assert.Equal(t, []model.Slot{model.SlotGPU, model.SlotCase}, report.Issues[3].Slots)
}

func TestCheckCompatibility_EmptyBuild(t *testing.T) {
	t.Parallel()

	report := CheckCompatibility(model.Parts{})
	assert.NotNil(t, report.Issues)
	assert.NotNil(t, report.Warnings)
	assert.True(t, report.IsCompatible)
	assert.False(t, report.HasWarnings)
}

func TestPerformanceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build model.Build
		want  model.PerformanceAssessment
	}{
		{
			name:  "empty build",
			build: model.NewBuild(),
			want:  model.PerformanceAssessment{Score: 0, Tier: model.TierEntryLevel},
		},
		{
			name: "gpu only at 2500MHz",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotGPU: {"boostClockMHz": 2500.0},
			}),
			want: model.PerformanceAssessment{Score: 100, Tier: model.TierExtreme},
		},
		{
			name: "gpu only with default clock",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotGPU: {"name": "gpu"},
			}),
			// 1500/50 = 30 of 40
			want: model.PerformanceAssessment{Score: 75, Tier: model.TierHighEnd},
		},
		{
			name: "sata storage only",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotStorage: {"interface": "SATA"},
			}),
			want: model.PerformanceAssessment{Score: 50, Tier: model.TierBudget},
		},
		{
			name: "cpu with defaults",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotCPU: {"name": "cpu"},
			}),
			// 3GHz * 4 cores / 10 = 1.2 of 30 -> 4%
			want: model.PerformanceAssessment{Score: 4, Tier: model.TierEntryLevel},
		},
		{
			name: "balanced build",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotCPU:     {"cores": 16.0, "boostClockGHz": 5.7},
				model.SlotGPU:     {"boostClockMHz": 2520.0},
				model.SlotMemory:  {"speed": "6000MHz", "modules": "2x16GB"},
				model.SlotStorage: {"type": "NVMe"},
				model.SlotCooler:  {"name": "aio"},
			}),
			// cpu 9.12 + gpu 40 + memory 6 + storage 10 + cooler 5 = 70.12 of 100
			want: model.PerformanceAssessment{Score: 70, Tier: model.TierMidRange},
		},
		{
			name: "memory only, default speed and modules",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotMemory: {"type": "DDR4"},
			}),
			// 3200/200*2/10 = 3.2 of 15 -> 21.33
			want: model.PerformanceAssessment{Score: 21, Tier: model.TierEntryLevel},
		},
		{
			name: "memory only, ddr prefixed speed",
			build: buildOf(map[model.Slot]model.Record{
				model.SlotMemory: {"speed": "DDR4-3200", "modules": 2.0},
			}),
			want: model.PerformanceAssessment{Score: 21, Tier: model.TierEntryLevel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PerformanceScore(converter.PartsFromBuild(tt.build)))
		})
	}
}

func TestTierFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.TierExtreme, tierFor(90))
	assert.Equal(t, model.TierHighEnd, tierFor(89))
	assert.Equal(t, model.TierHighEnd, tierFor(75))
	assert.Equal(t, model.TierMidRange, tierFor(60))
	assert.Equal(t, model.TierBudget, tierFor(40))
	assert.Equal(t, model.TierEntryLevel, tierFor(39))
}
