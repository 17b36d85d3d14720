package config

// Geometry describes the emulated disk as the guest sees it.
// The values are reported verbatim through the geometry accessors,
// emulators use them to synthesize a CHS layout.
type Geometry struct {
	Size       uint32 `yaml:"size" valid:"optional"`
	Heads      uint32 `yaml:"heads" valid:"optional"`
	Sectors    uint32 `yaml:"sectors" valid:"optional"`
	Cylinders  uint32 `yaml:"cylinders" valid:"optional"`
	SectorSize uint32 `yaml:"sectorSize" valid:"optional"`
}

// DefaultGeometry returns the geometry of the stock 1 GiB drive template.
func DefaultGeometry() Geometry {
	return Geometry{
		Size:       2097152,
		Heads:      128,
		Sectors:    63,
		Cylinders:  520,
		SectorSize: DefaultSectorSize,
	}
}
