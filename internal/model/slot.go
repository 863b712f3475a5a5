package model

import (
	"fmt"
	"strings"
)

// Slot is one of the twelve fixed component categories of a build.
type Slot string

const (
	SlotCPU         Slot = "cpu"
	SlotCooler      Slot = "cooler"
	SlotMotherboard Slot = "motherboard"
	SlotMemory      Slot = "memory"
	SlotStorage     Slot = "storage"
	SlotGPU         Slot = "gpu"
	SlotCase        Slot = "case"
	SlotPSU         Slot = "psu"
	SlotMonitor     Slot = "monitor"
	SlotExpansion   Slot = "expansion"
	SlotPeripherals Slot = "peripherals"
	SlotAccessories Slot = "accessories"
)

var allSlots = [...]Slot{
	SlotCPU,
	SlotCooler,
	SlotMotherboard,
	SlotMemory,
	SlotStorage,
	SlotGPU,
	SlotCase,
	SlotPSU,
	SlotMonitor,
	SlotExpansion,
	SlotPeripherals,
	SlotAccessories,
}

// AllSlots returns the closed slot set in display order.
func AllSlots() []Slot {
	out := make([]Slot, len(allSlots))
	copy(out, allSlots[:])
	return out
}

func (s Slot) Valid() bool {
	for _, known := range allSlots {
		if s == known {
			return true
		}
	}
	return false
}

func (s Slot) String() string { return string(s) }

func ParseSlot(raw string) (Slot, error) {
	s := Slot(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
	}
	return s, nil
}
