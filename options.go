package voxgo

import (
	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/pager"
	"github.com/hupe1980/voxgo/resource"
)

const (
	// DefaultChunkSideLength is the chunk edge length in voxels.
	DefaultChunkSideLength = 32
	// DefaultMemoryLimit is the resident-set budget in bytes when neither
	// WithMemoryLimit nor WithMaxResidentChunks is given.
	DefaultMemoryLimit = 256 << 20
	// DefaultTableSize is the minimum number of chunk table slots.
	DefaultTableSize = 1 << 16
)

type options struct {
	sideLength       int32
	maxResident      int
	memoryLimit      int64
	tableSize        int
	pager            pager.Pager
	compressor       codec.Compressor
	region           model.Region
	border           any
	logger           *Logger
	metricsCollector MetricsCollector
	rc               *resource.Controller
	morton           bool
}

func defaultOptions() options {
	return options{
		sideLength:       DefaultChunkSideLength,
		compressor:       codec.Default,
		region:           model.MaxRegion,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a PagedVolume.
type Option func(*options)

// WithChunkSideLength sets the chunk edge length. It must be a power of two
// in [2, 256].
func WithChunkSideLength(n int32) Option {
	return func(o *options) {
		o.sideLength = n
	}
}

// WithMaxResidentChunks caps the number of uncompressed chunks held in
// memory. When combined with WithMemoryLimit the smaller budget wins.
func WithMaxResidentChunks(n int) Option {
	return func(o *options) {
		o.maxResident = n
	}
}

// WithMemoryLimit sets the resident-set budget in bytes. It is converted to
// a chunk count (at least one) from the chunk size in bytes.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithTableSize sets the number of chunk table slots. It is rounded up to a
// power of two and must be at least twice the resident budget.
func WithTableSize(n int) Option {
	return func(o *options) {
		o.tableSize = n
	}
}

// WithPager sets the backing store consulted on fault-in and eviction.
// Without a pager, evicted chunks live on only in compressed form in the
// chunk table.
func WithPager(p pager.Pager) Option {
	return func(o *options) {
		o.pager = p
	}
}

// WithCompressor sets the chunk compressor.
//
// If nil is passed, codec.Default is used.
func WithCompressor(c codec.Compressor) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.compressor = c
	}
}

// WithRegion bounds the volume. Reads outside return the border value,
// writes outside fail with ErrOutOfBounds. The default is model.MaxRegion.
func WithRegion(r model.Region) Option {
	return func(o *options) {
		o.region = r
	}
}

// WithBorderValue sets the value read outside the volume region. Its type
// must match the volume's voxel type.
func WithBorderValue[V comparable](v V) Option {
	return func(o *options) {
		o.border = v
	}
}

// WithLogger sets the logger.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController charges resident chunk memory and pager IO to a
// controller that may be shared by several volumes.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithMortonOrdering stores chunk voxels in Morton order. Compressed
// payloads follow the in-memory layout, so a pager's data must always be
// read back with the same setting.
func WithMortonOrdering(enabled bool) Option {
	return func(o *options) {
		o.morton = enabled
	}
}
