package model

// Canonical per-category specs produced from raw records. Numeric fields
// hold 0 when the source record does not expose them.

type CPUSpec struct {
	Socket string
	// Thermal design power in watts.
	TDPWatts float64
	Cores    int
	// Best available clock: boost, then performance-core, then base.
	ClockGHz float64
}

type CoolerSpec struct {
	// Height in millimeters.
	HeightMM float64
	// Heat the cooler is rated to dissipate, in watts.
	TDPRatingWatts float64
	// Set when the record exposes fan speed, i.e. an active cooler.
	HasFan bool
}

type MotherboardSpec struct {
	// Boards listing several sockets or memory generations accept any of them.
	Sockets     []string
	MemoryTypes []string
	// Maximum supported memory capacity in gigabytes.
	MemoryMaxGB float64
	// Highest rated memory speed in MHz.
	MaxMemorySpeedMHz int
	FormFactor        string
}

type MemorySpec struct {
	Type     string
	SpeedMHz int
	Modules  int
}

type StorageSpec struct {
	Interface string
	NVMe      bool
}

type GPUSpec struct {
	// Card length in millimeters.
	LengthMM      float64
	TDPWatts      float64
	BoostClockMHz float64
}

type CaseSpec struct {
	MotherboardFormFactors []string
	MaxGPULengthMM         float64
	MaxCoolerHeightMM      float64
}

type PSUSpec struct {
	Wattage float64
}

// Parts is the canonical view of a build used by the evaluation rules.
// A nil pointer means the slot is empty.
type Parts struct {
	CPU         *CPUSpec
	Cooler      *CoolerSpec
	Motherboard *MotherboardSpec
	Memory      *MemorySpec
	Storage     *StorageSpec
	GPU         *GPUSpec
	Case        *CaseSpec
	PSU         *PSUSpec
}
