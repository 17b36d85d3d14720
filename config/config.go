package config

import (
	"fmt"

	valid "github.com/asaskevich/govalidator"
	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultSectorSize is the sector size used
	// when a DriveConfig doesn't specify one.
	DefaultSectorSize = 512
	// DefaultAheadRange is the prefetch width used
	// when a DriveConfig doesn't specify one.
	DefaultAheadRange = 255
	// MaxAheadRange is the upper bound of the prefetch width,
	// the wire protocol dedicates a single byte to it.
	MaxAheadRange = 255
	// DefaultMemoryLimit is the block cache budget used
	// when a DriveConfig doesn't specify one (32 MiB).
	DefaultMemoryLimit = 32 * 1024 * 1024
)

// DriveConfig represents the tunables of a single remote drive
type DriveConfig struct {
	SectorSize  uint32 `yaml:"sectorSize" valid:"optional"`
	AheadRange  uint8  `yaml:"aheadRange" valid:"optional"`
	MemoryLimit uint32 `yaml:"memoryLimit" valid:"optional"`
	ReadOnly    bool   `yaml:"readOnly" valid:"optional"`
}

// NewDriveConfig creates a new DriveConfig from a byte slice in YAML 1.2 format
func NewDriveConfig(data []byte) (*DriveConfig, error) {
	cfg := NewDefaultDriveConfig()
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewDefaultDriveConfig creates a DriveConfig with all defaults applied
func NewDefaultDriveConfig() DriveConfig {
	return DriveConfig{
		SectorSize:  DefaultSectorSize,
		AheadRange:  DefaultAheadRange,
		MemoryLimit: DefaultMemoryLimit,
	}
}

// ToBytes converts a DriveConfig to a byte slice in YAML 1.2 format
func (cfg *DriveConfig) ToBytes() ([]byte, error) {
	res, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to turn drive config into bytes: %v", err)
	}

	return res, nil
}

// BlockSize returns the size in bytes of one prefetched block,
// the unit of network transfer and caching.
func (cfg *DriveConfig) BlockSize() uint32 {
	return cfg.SectorSize * uint32(cfg.AheadRange)
}

// MaxCachedBlocks returns how many blocks fit in the memory limit
func (cfg *DriveConfig) MaxCachedBlocks() int {
	return int(cfg.MemoryLimit / cfg.BlockSize())
}

// Validate validates a DriveConfig
func (cfg DriveConfig) Validate() error {
	// check valid tags
	_, err := valid.ValidateStruct(cfg)
	if err != nil {
		return fmt.Errorf("invalid drive config: %v", err)
	}

	if cfg.SectorSize == 0 {
		return fmt.Errorf("%d is an invalid sectorSize", cfg.SectorSize)
	}
	if cfg.AheadRange == 0 {
		return fmt.Errorf("%d is an invalid aheadRange", cfg.AheadRange)
	}
	if cfg.MemoryLimit < cfg.BlockSize() {
		return fmt.Errorf(
			"memoryLimit of %d bytes doesn't fit a single %d-byte block",
			cfg.MemoryLimit, cfg.BlockSize())
	}

	return nil
}
