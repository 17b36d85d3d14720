package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultDriveConfig(t *testing.T) {
	cfg := NewDefaultDriveConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint32(DefaultSectorSize), cfg.SectorSize)
	assert.Equal(t, uint8(DefaultAheadRange), cfg.AheadRange)
	assert.Equal(t, uint32(DefaultMemoryLimit), cfg.MemoryLimit)
	assert.False(t, cfg.ReadOnly)

	assert.Equal(t, uint32(255*512), cfg.BlockSize())
	assert.Equal(t, int(uint32(DefaultMemoryLimit)/(255*512)), cfg.MaxCachedBlocks())
}

func TestNewDriveConfig(t *testing.T) {
	cfg, err := NewDriveConfig([]byte(`
sectorSize: 512
aheadRange: 128
memoryLimit: 8388608
readOnly: true
`))
	require.NoError(t, err)

	assert.Equal(t, uint32(512), cfg.SectorSize)
	assert.Equal(t, uint8(128), cfg.AheadRange)
	assert.Equal(t, uint32(8*1024*1024), cfg.MemoryLimit)
	assert.True(t, cfg.ReadOnly)
}

func TestNewDriveConfigDefaults(t *testing.T) {
	// omitted properties fall back to the defaults
	cfg, err := NewDriveConfig([]byte(`aheadRange: 64`))
	require.NoError(t, err)

	assert.Equal(t, uint32(DefaultSectorSize), cfg.SectorSize)
	assert.Equal(t, uint8(64), cfg.AheadRange)
	assert.Equal(t, uint32(DefaultMemoryLimit), cfg.MemoryLimit)
}

func TestDriveConfigValidation(t *testing.T) {
	cfg := NewDefaultDriveConfig()
	cfg.SectorSize = 0
	assert.Error(t, cfg.Validate(), "zero sector size is invalid")

	cfg = NewDefaultDriveConfig()
	cfg.AheadRange = 0
	assert.Error(t, cfg.Validate(), "zero ahead range is invalid")

	cfg = NewDefaultDriveConfig()
	cfg.MemoryLimit = cfg.BlockSize() - 1
	assert.Error(t, cfg.Validate(),
		"the memory limit must fit at least one block")

	cfg.MemoryLimit = cfg.BlockSize()
	assert.NoError(t, cfg.Validate())
}

func TestDriveConfigRoundTrip(t *testing.T) {
	cfg := NewDefaultDriveConfig()
	cfg.AheadRange = 32

	data, err := cfg.ToBytes()
	require.NoError(t, err)

	parsed, err := NewDriveConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, *parsed)
}

func TestCredentialsHandshake(t *testing.T) {
	creds := Credentials{Owner: "dos", Name: "hdd-1", Token: "secret"}
	assert.Equal(t, "dos&hdd-1&secret", creds.Handshake())

	// empty fields stay in place, the server decides what is required
	creds = Credentials{Owner: "dos", Name: "hdd-1"}
	assert.Equal(t, "dos&hdd-1&", creds.Handshake())
}

func TestCredentialsString(t *testing.T) {
	creds := Credentials{Owner: "dos", Name: "hdd-1", Token: "secret"}
	assert.Equal(t, "dos/hdd-1", creds.String())
	assert.NotContains(t, creds.String(), "secret")
}

func TestDefaultGeometry(t *testing.T) {
	geometry := DefaultGeometry()

	assert.Equal(t, uint32(2097152), geometry.Size)
	assert.Equal(t, uint32(128), geometry.Heads)
	assert.Equal(t, uint32(63), geometry.Sectors)
	assert.Equal(t, uint32(520), geometry.Cylinders)
	assert.Equal(t, uint32(512), geometry.SectorSize)
}
