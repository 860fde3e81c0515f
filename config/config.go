// Package config loads volume settings from YAML.
//
//	chunk_side_length: 32
//	max_resident_chunks: 1024
//	compressor: zstd
//	pager:
//	  kind: sqlite
//	  dsn: data/chunks.db
//
// Zero values fall back to the voxgo defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/voxgo"
	"github.com/hupe1980/voxgo/blobstore"
	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/pager"
	"github.com/hupe1980/voxgo/resource"
	"gopkg.in/yaml.v3"
)

// Pager kinds.
const (
	PagerNone   = "none"
	PagerMemory = "memory"
	PagerFile   = "file"
	PagerSQLite = "sqlite"
)

type Config struct {
	ChunkSideLength    int32       `yaml:"chunk_side_length"`
	MaxResidentChunks  int         `yaml:"max_resident_chunks"`
	MemoryLimitBytes   int64       `yaml:"memory_limit_bytes"`
	TableSize          int         `yaml:"table_size"`
	Compressor         string      `yaml:"compressor"`
	MortonOrdering     bool        `yaml:"morton_ordering"`
	IOLimitBytesPerSec int64       `yaml:"io_limit_bytes_per_sec"`
	Region             *RegionSpec `yaml:"region,omitempty"`
	Pager              PagerSpec   `yaml:"pager"`
}

type RegionSpec struct {
	Lower [3]int32 `yaml:"lower"`
	Upper [3]int32 `yaml:"upper"`
}

func (r RegionSpec) Region() model.Region {
	return model.NewRegionFromCoords(r.Lower[0], r.Lower[1], r.Lower[2], r.Upper[0], r.Upper[1], r.Upper[2])
}

type PagerSpec struct {
	Kind string `yaml:"kind"`
	// Dir is the chunk directory for the file pager.
	Dir string `yaml:"dir"`
	// DSN is the database path for the sqlite pager.
	DSN      string `yaml:"dsn"`
	Checksum bool   `yaml:"checksum"`
	// CacheBytes puts a read-through LRU cache in front of the file pager.
	CacheBytes int64 `yaml:"cache_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ChunkSideLength: voxgo.DefaultChunkSideLength,
		Compressor:      codec.Default.Name(),
		Pager:           PagerSpec{Kind: PagerNone},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Normalize lower-cases names and fills in omitted defaults.
func (c *Config) Normalize() {
	c.Compressor = strings.ToLower(strings.TrimSpace(c.Compressor))
	if c.Compressor == "" {
		c.Compressor = codec.Default.Name()
	}
	c.Pager.Kind = strings.ToLower(strings.TrimSpace(c.Pager.Kind))
	if c.Pager.Kind == "" {
		c.Pager.Kind = PagerNone
	}
	if c.ChunkSideLength == 0 {
		c.ChunkSideLength = voxgo.DefaultChunkSideLength
	}
}

// Validate checks the settings that can be checked without building a volume.
func (c Config) Validate() error {
	var errs []error
	if s := c.ChunkSideLength; s < 2 || s > 256 || s&(s-1) != 0 {
		errs = append(errs, fmt.Errorf("chunk_side_length %d: %w", s, voxgo.ErrInvalidSideLength))
	}
	if c.MaxResidentChunks < 0 {
		errs = append(errs, errors.New("max_resident_chunks must be >= 0"))
	}
	if c.MemoryLimitBytes < 0 {
		errs = append(errs, errors.New("memory_limit_bytes must be >= 0"))
	}
	if c.TableSize < 0 {
		errs = append(errs, errors.New("table_size must be >= 0"))
	}
	if c.IOLimitBytesPerSec < 0 {
		errs = append(errs, errors.New("io_limit_bytes_per_sec must be >= 0"))
	}
	if _, ok := codec.ByName(c.Compressor); !ok {
		errs = append(errs, fmt.Errorf("unknown compressor %q", c.Compressor))
	}
	if c.Region != nil && !c.Region.Region().IsValid() {
		errs = append(errs, fmt.Errorf("region %s: %w", c.Region.Region(), voxgo.ErrInvalidRegion))
	}

	switch c.Pager.Kind {
	case PagerNone, PagerMemory:
	case PagerFile:
		if strings.TrimSpace(c.Pager.Dir) == "" {
			errs = append(errs, errors.New("pager.dir is required for the file pager"))
		}
	case PagerSQLite:
		if strings.TrimSpace(c.Pager.DSN) == "" {
			errs = append(errs, errors.New("pager.dsn is required for the sqlite pager"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown pager kind %q", c.Pager.Kind))
	}
	if c.Pager.CacheBytes < 0 {
		errs = append(errs, errors.New("pager.cache_bytes must be >= 0"))
	}
	return errors.Join(errs...)
}

// Options converts the configuration into volume options. The pager is
// opened separately with OpenPager.
func (c Config) Options() ([]voxgo.Option, error) {
	comp, ok := codec.ByName(c.Compressor)
	if !ok {
		return nil, fmt.Errorf("unknown compressor %q", c.Compressor)
	}

	opts := []voxgo.Option{
		voxgo.WithChunkSideLength(c.ChunkSideLength),
		voxgo.WithMaxResidentChunks(c.MaxResidentChunks),
		voxgo.WithMemoryLimit(c.MemoryLimitBytes),
		voxgo.WithTableSize(c.TableSize),
		voxgo.WithCompressor(comp),
		voxgo.WithMortonOrdering(c.MortonOrdering),
	}
	if c.Region != nil {
		opts = append(opts, voxgo.WithRegion(c.Region.Region()))
	}
	if rc := c.ResourceController(); rc != nil {
		opts = append(opts, voxgo.WithResourceController(rc))
	}
	return opts, nil
}

// ResourceController returns a controller enforcing the IO limit, or nil
// when none is configured.
func (c Config) ResourceController() *resource.Controller {
	if c.IOLimitBytesPerSec <= 0 {
		return nil
	}
	return resource.NewController(resource.Config{IOLimitBytesPerSec: c.IOLimitBytesPerSec})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenPager opens the configured pager and a closer that releases it. A nil
// pager means chunks live only in memory.
func (c Config) OpenPager() (pager.Pager, io.Closer, error) {
	var blobOpts []pager.BlobOption
	if c.Pager.Checksum {
		blobOpts = append(blobOpts, pager.WithChecksum())
	}

	switch c.Pager.Kind {
	case PagerNone, "":
		return nil, nopCloser{}, nil
	case PagerMemory:
		return pager.NewBlobPager(blobstore.NewMemoryStore(), blobOpts...), nopCloser{}, nil
	case PagerFile:
		if c.Pager.CacheBytes > 0 {
			store := blobstore.NewCachingStore(blobstore.NewLocalStore(c.Pager.Dir), c.Pager.CacheBytes, nil)
			return pager.NewBlobPager(store, blobOpts...), store, nil
		}
		if len(blobOpts) > 0 {
			return pager.NewBlobPager(blobstore.NewLocalStore(c.Pager.Dir), blobOpts...), nopCloser{}, nil
		}
		return pager.NewFilePager(c.Pager.Dir), nopCloser{}, nil
	case PagerSQLite:
		p, err := pager.OpenSQLite(c.Pager.DSN)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unknown pager kind %q", c.Pager.Kind)
	}
}
