package xstring

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of a Factory configuration.
//
//	allocator: pool          # heap (default) or pool
//	max_capacity: 64MB       # 0 or absent: unlimited
//	pool_max_class: 1MB      # largest region a pool allocator retains
//	track: true              # count allocations (TrackingAllocator)
type FileConfig struct {
	Allocator    string            `yaml:"allocator"`
	MaxCapacity  datasize.ByteSize `yaml:"max_capacity"`
	PoolMaxClass datasize.ByteSize `yaml:"pool_max_class"`
	Track        bool              `yaml:"track"`
}

// ParseConfig decodes YAML, rejecting unknown keys. Empty input yields the
// zero FileConfig.
func ParseConfig(data []byte) (FileConfig, error) {
	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, errors.Wrap(err, "xstring: parse config")
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Wrapf(err, "xstring: read config %s", path)
	}
	return ParseConfig(data)
}

// NewAllocator returns the allocator described by c.
func (c FileConfig) NewAllocator() (Allocator, error) {
	var a Allocator
	switch strings.ToLower(strings.TrimSpace(c.Allocator)) {
	case "", "heap":
		a = HeapAllocator{}
	case "pool":
		a = NewPoolAllocator(clampSize(c.PoolMaxClass.Bytes()))
	default:
		return nil, errors.Errorf("xstring: unknown allocator %q", c.Allocator)
	}
	if c.Track {
		a = NewTrackingAllocator(a)
	}
	return a, nil
}

// Builder returns a Builder preloaded with the allocator and limit of c.
func (c FileConfig) Builder() (*Builder, error) {
	a, err := c.NewAllocator()
	if err != nil {
		return nil, err
	}
	return NewBuilder().WithAllocator(a).WithMaxCapacity(c.MaxCapacity), nil
}
