package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/pc-builder/internal/model"
)

// PartsFromBuild maps every populated slot of b that the evaluation rules
// care about to its canonical spec.
func PartsFromBuild(b model.Build) model.Parts {
	return model.Parts{
		CPU:         CPUFromRecord(b[model.SlotCPU]),
		Cooler:      CoolerFromRecord(b[model.SlotCooler]),
		Motherboard: MotherboardFromRecord(b[model.SlotMotherboard]),
		Memory:      MemoryFromRecord(b[model.SlotMemory]),
		Storage:     StorageFromRecord(b[model.SlotStorage]),
		GPU:         GPUFromRecord(b[model.SlotGPU]),
		Case:        CaseFromRecord(b[model.SlotCase]),
		PSU:         PSUFromRecord(b[model.SlotPSU]),
	}
}

func CPUFromRecord(r model.Record) *model.CPUSpec {
	if r == nil {
		return nil
	}
	return &model.CPUSpec{
		Socket:   text(r, "socket"),
		TDPWatts: number(r, "tdpWatts", "tdp"),
		Cores:    int(number(r, "cores", "coreCount")),
		ClockGHz: number(r, "boostClockGHz", "performanceCoreClock", "baseClockGHz"),
	}
}

func CoolerFromRecord(r model.Record) *model.CoolerSpec {
	if r == nil {
		return nil
	}
	return &model.CoolerSpec{
		HeightMM:       number(r, "height"),
		TDPRatingWatts: number(r, "tdpRating", "tdp"),
		HasFan:         r["fanRPM"] != nil,
	}
}

func MotherboardFromRecord(r model.Record) *model.MotherboardSpec {
	if r == nil {
		return nil
	}

	out := &model.MotherboardSpec{
		Sockets:     texts(r, "socket"),
		MemoryTypes: texts(r, "memoryType"),
		MemoryMaxGB: number(r, "memoryMax"),
		FormFactor:  text(r, "formFactor"),
	}
	if v, ok := first(r, "maxMemorySpeed", "memorySpeedMax", "memorySpeed"); ok {
		out.MaxMemorySpeedMHz, _ = ParseSpeedMHz(v)
	}

	return out
}

func MemoryFromRecord(r model.Record) *model.MemorySpec {
	if r == nil {
		return nil
	}

	out := &model.MemorySpec{Type: text(r, "type")}
	if v, ok := first(r, "speed"); ok {
		out.SpeedMHz, _ = ParseSpeedMHz(v)
	}
	if v, ok := first(r, "modules"); ok {
		out.Modules, _ = ParseModuleCount(v)
	}

	return out
}

func StorageFromRecord(r model.Record) *model.StorageSpec {
	if r == nil {
		return nil
	}

	iface := text(r, "interface", "type")
	nvme := lo.SomeBy([]string{text(r, "interface"), text(r, "type")}, func(s string) bool {
		return strings.Contains(strings.ToLower(s), "nvme")
	})

	return &model.StorageSpec{Interface: iface, NVMe: nvme}
}

func GPUFromRecord(r model.Record) *model.GPUSpec {
	if r == nil {
		return nil
	}
	return &model.GPUSpec{
		LengthMM:      number(r, "length", "maximumLength"),
		TDPWatts:      number(r, "tdpWatts", "tdp"),
		BoostClockMHz: number(r, "boostClockMHz", "coreClock"),
	}
}

func CaseFromRecord(r model.Record) *model.CaseSpec {
	if r == nil {
		return nil
	}
	return &model.CaseSpec{
		MotherboardFormFactors: texts(r, "motherboardFormFactor"),
		MaxGPULengthMM:         number(r, "maximumVideoCardLength"),
		MaxCoolerHeightMM:      number(r, "maximumCpuCoolerHeight"),
	}
}

func PSUFromRecord(r model.Record) *model.PSUSpec {
	if r == nil {
		return nil
	}
	return &model.PSUSpec{Wattage: number(r, "wattage", "wattageW")}
}

// RecordPrice extracts the unit price: price, then priceUsd, then
// priceValue. Missing, unparseable or negative values count as 0.
func RecordPrice(r model.Record) float64 {
	v, ok := first(r, "price", "priceUsd", "priceValue")
	if !ok {
		return 0
	}

	f, ok := ParseNumber(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// RecordID identifies a catalog record: id, then _id, then name.
func RecordID(r model.Record) string {
	v, ok := first(r, "id", "_id", "name")
	if !ok {
		return ""
	}

	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	default:
		return fmt.Sprint(vv)
	}
}

// RecordName returns a display label for r.
func RecordName(r model.Record) string {
	return text(r, "name", "title", "model")
}

// first returns the first value among keys that is set and not empty.
func first(r model.Record, keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch vv := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(vv) == ""
	case bool:
		return !vv
	case []any:
		return len(vv) == 0
	default:
		f, ok := ParseNumber(v)
		return ok && f == 0
	}
}

func number(r model.Record, keys ...string) float64 {
	for _, k := range keys {
		v, ok := first(r, k)
		if !ok {
			continue
		}
		if f, ok := ParseNumber(v); ok && f > 0 {
			return f
		}
	}
	return 0
}

func text(r model.Record, keys ...string) string {
	v, ok := first(r, keys...)
	if !ok {
		return ""
	}
	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	case []string, []any:
		return strings.Join(texts(model.Record{"v": vv}, "v"), ", ")
	default:
		return fmt.Sprint(v)
	}
}

func texts(r model.Record, key string) []string {
	v, ok := first(r, key)
	if !ok {
		return nil
	}

	var raw []string
	switch vv := v.(type) {
	case string:
		raw = strings.Split(vv, ",")
	case []string:
		raw = vv
	case []any:
		raw = lo.FilterMap(vv, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		})
	}

	return lo.Compact(lo.Map(raw, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
