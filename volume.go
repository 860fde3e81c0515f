package voxgo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/internal/hash"
	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/pager"
	"github.com/hupe1980/voxgo/resource"
)

// PagedVolume is a sparse voxel volume stored as a set of cubic chunks.
//
// At most MaxResidentChunks chunks hold uncompressed voxels at any time.
// When a new chunk is faulted in beyond that budget, the least recently used
// resident chunk is evicted: modified chunks are compressed and handed to the
// pager, clean ones simply drop their voxel data.
//
// A PagedVolume is not safe for concurrent use. Reads mutate the chunk table
// and the last-chunk cache, so a volume and its samplers must be driven by a
// single goroutine at a time. Independent volumes can be used concurrently.
type PagedVolume[V comparable] struct {
	region    model.Region
	border    V
	layout    *chunkLayout
	voxelSize int
	// chunkBytes is the uncompressed size of one chunk.
	chunkBytes int

	pager      pager.Pager
	compressor codec.Compressor
	logger     *Logger
	metrics    MetricsCollector
	rc         *resource.Controller

	maxResident int
	morton      bool
	slots       []*Chunk[V]
	slotMask    uint32
	resident    *roaring.Bitmap
	known       int
	timestamp   uint64
	last        *Chunk[V]
	scratch     []byte

	stats  counters
	closed bool
}

type counters struct {
	hits, misses, evictions, pageIns, pageOuts, discards int64
}

// Stats is a point-in-time snapshot of volume state.
type Stats struct {
	ResidentChunks    int
	KnownChunks       int
	MaxResidentChunks int
	TableSize         int
	ResidentBytes     int64
	CompressedBytes   int64
	CacheHits         int64
	CacheMisses       int64
	Evictions         int64
	PageIns           int64
	PageOuts          int64
	Discards          int64
}

// NewPagedVolume creates a volume of voxel type V.
func NewPagedVolume[V comparable](optFns ...Option) (*PagedVolume[V], error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	size, err := voxelSize[V]()
	if err != nil {
		return nil, err
	}
	layout, err := newChunkLayout(o.sideLength)
	if err != nil {
		return nil, err
	}
	if !o.region.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRegion, o.region)
	}

	var border V
	if o.border != nil {
		b, ok := o.border.(V)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrInvalidBorderValue, o.border)
		}
		border = b
	}

	chunkBytes := layout.voxels * size
	maxResident, err := residentBudget(o, chunkBytes)
	if err != nil {
		return nil, err
	}
	tableSize, err := tableSlots(o.tableSize, maxResident)
	if err != nil {
		return nil, err
	}

	bound := o.compressor.MaxCompressedSize(chunkBytes)
	if bound < 0 {
		bound = 0
	}

	return &PagedVolume[V]{
		region:      o.region,
		border:      border,
		layout:      layout,
		voxelSize:   size,
		chunkBytes:  chunkBytes,
		pager:       o.pager,
		compressor:  o.compressor,
		logger:      o.logger,
		metrics:     o.metricsCollector,
		rc:          o.rc,
		maxResident: maxResident,
		slots:       make([]*Chunk[V], tableSize),
		slotMask:    uint32(tableSize - 1),
		resident:    roaring.New(),
		scratch:     make([]byte, bound),
		morton:      o.morton,
	}, nil
}

func residentBudget(o options, chunkBytes int) (int, error) {
	if o.maxResident < 0 || o.memoryLimit < 0 {
		return 0, fmt.Errorf("%w: negative resident budget", ErrInvalidTableSize)
	}

	limit := o.memoryLimit
	if limit == 0 && o.maxResident == 0 {
		limit = DefaultMemoryLimit
	}

	n := math.MaxInt32
	if limit > 0 {
		n = int(max(1, limit/int64(chunkBytes)))
	}
	if o.maxResident > 0 {
		n = min(n, o.maxResident)
	}
	return n, nil
}

func tableSlots(requested, maxResident int) (int, error) {
	minSlots := 2 * maxResident
	if requested == 0 {
		requested = max(DefaultTableSize, minSlots)
	}
	if requested < minSlots {
		return 0, fmt.Errorf("%w: %d slots for %d resident chunks", ErrInvalidTableSize, requested, maxResident)
	}
	if requested > 1<<30 {
		return 0, fmt.Errorf("%w: %d slots", ErrInvalidTableSize, requested)
	}
	return 1 << bits.Len(uint(requested-1)), nil
}

// Region returns the volume bounds.
func (v *PagedVolume[V]) Region() model.Region { return v.region }

// BorderValue returns the value read outside the volume region.
func (v *PagedVolume[V]) BorderValue() V { return v.border }

// ChunkSideLength returns the chunk edge length in voxels.
func (v *PagedVolume[V]) ChunkSideLength() int32 { return v.layout.side }

// MaxResidentChunks returns the resident-set budget.
func (v *PagedVolume[V]) MaxResidentChunks() int { return v.maxResident }

// Voxel returns the voxel at (x, y, z). Positions outside the volume region
// return the border value.
func (v *PagedVolume[V]) Voxel(x, y, z int32) (V, error) {
	if !v.region.ContainsPoint(model.Vec3{X: x, Y: y, Z: z}, 0) {
		return v.border, nil
	}
	c, err := v.chunkAt(context.Background(), x>>v.layout.power, y>>v.layout.power, z>>v.layout.power)
	if err != nil {
		return v.border, err
	}
	m := v.layout.mask
	return c.Voxel(x&m, y&m, z&m), nil
}

// SetVoxel writes the voxel at (x, y, z).
func (v *PagedVolume[V]) SetVoxel(x, y, z int32, value V) error {
	if !v.region.ContainsPoint(model.Vec3{X: x, Y: y, Z: z}, 0) {
		return fmt.Errorf("%w: (%d,%d,%d) not in %s", ErrOutOfBounds, x, y, z, v.region)
	}
	c, err := v.chunkAt(context.Background(), x>>v.layout.power, y>>v.layout.power, z>>v.layout.power)
	if err != nil {
		return err
	}
	m := v.layout.mask
	c.SetVoxel(x&m, y&m, z&m, value)
	return nil
}

// Prefetch makes every chunk intersecting region resident, up to the
// resident budget. It blocks until the chunks are loaded.
func (v *PagedVolume[V]) Prefetch(ctx context.Context, region model.Region) (err error) {
	region.CropTo(v.region)
	if !region.IsValid() {
		return nil
	}

	n := 0
	defer func() { v.logger.LogPrefetch(ctx, region, n, err) }()

	p := v.layout.power
	lo := model.Vec3{X: region.Lower.X >> p, Y: region.Lower.Y >> p, Z: region.Lower.Z >> p}
	hi := model.Vec3{X: region.Upper.X >> p, Y: region.Upper.Y >> p, Z: region.Upper.Z >> p}

	// Loading more chunks than fit would evict the first ones again.
	for z := int64(lo.Z); z <= int64(hi.Z); z++ {
		for y := int64(lo.Y); y <= int64(hi.Y); y++ {
			for x := int64(lo.X); x <= int64(hi.X); x++ {
				if n >= v.maxResident {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := v.chunkAt(ctx, int32(x), int32(y), int32(z)); err != nil {
					return err
				}
				n++
			}
		}
	}
	return nil
}

// Flush evicts every resident chunk, paging out the modified ones. A chunk
// whose eviction fails stays resident; Flush continues with the others and
// returns the joined errors.
func (v *PagedVolume[V]) Flush(ctx context.Context) error {
	if v.closed {
		return ErrClosed
	}

	slots := v.resident.ToArray()
	released := int64(len(slots)) * int64(v.chunkBytes)

	var errs []error
	for _, s := range slots {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := v.evict(ctx, int(s)); err != nil {
			errs = append(errs, err)
			released -= int64(v.chunkBytes)
		}
	}

	err := errors.Join(errs...)
	v.logger.LogFlush(ctx, len(slots), released, err)
	return err
}

// CalculateSizeInBytes returns the memory held by resident voxel data.
func (v *PagedVolume[V]) CalculateSizeInBytes() int64 {
	return int64(v.resident.GetCardinality()) * int64(v.chunkBytes)
}

// Stats returns a snapshot of volume state.
func (v *PagedVolume[V]) Stats() Stats {
	var compressed int64
	for _, c := range v.slots {
		if c != nil {
			compressed += int64(len(c.compressed))
		}
	}
	return Stats{
		ResidentChunks:    int(v.resident.GetCardinality()),
		KnownChunks:       v.known,
		MaxResidentChunks: v.maxResident,
		TableSize:         len(v.slots),
		ResidentBytes:     v.CalculateSizeInBytes(),
		CompressedBytes:   compressed,
		CacheHits:         v.stats.hits,
		CacheMisses:       v.stats.misses,
		Evictions:         v.stats.evictions,
		PageIns:           v.stats.pageIns,
		PageOuts:          v.stats.pageOuts,
		Discards:          v.stats.discards,
	}
}

// Sampler returns a cursor positioned at the volume's lower corner.
func (v *PagedVolume[V]) Sampler() *Sampler[V] {
	s := &Sampler[V]{src: v}
	s.SetPosition(v.region.Lower.X, v.region.Lower.Y, v.region.Lower.Z)
	return s
}

// Close flushes all modified chunks and releases the volume's memory.
// Further operations fail with ErrClosed.
func (v *PagedVolume[V]) Close() error {
	if v.closed {
		return nil
	}
	err := v.Flush(context.Background())

	// Whatever is still resident failed to page out; drop it anyway.
	v.resident.Iterate(func(s uint32) bool {
		v.slots[s].release()
		v.rc.ReleaseMemory(int64(v.chunkBytes))
		return true
	})
	v.resident.Clear()
	v.slots = nil
	v.last = nil
	v.closed = true
	return err
}

// chunkAt returns the resident chunk at a chunk-space position, faulting it
// in if necessary.
func (v *PagedVolume[V]) chunkAt(ctx context.Context, cx, cy, cz int32) (*Chunk[V], error) {
	if v.closed {
		return nil, ErrClosed
	}
	pos := model.Vec3{X: cx, Y: cy, Z: cz}

	if c := v.last; c != nil && c.position == pos && c.data != nil {
		v.stats.hits++
		v.touch(c)
		return c, nil
	}
	v.stats.misses++

	c := v.lookup(pos)
	if c == nil {
		var err error
		if c, err = v.create(ctx, pos); err != nil {
			return nil, err
		}
	}

	v.touch(c)
	if c.data == nil {
		if err := v.load(ctx, c); err != nil {
			return nil, err
		}
	}
	v.last = c
	return c, nil
}

func (v *PagedVolume[V]) touch(c *Chunk[V]) {
	v.timestamp++
	c.lastAccess = v.timestamp
}

func (v *PagedVolume[V]) home(pos model.Vec3) uint32 {
	return hash.Position(pos.X, pos.Y, pos.Z) & v.slotMask
}

// lookup probes the table for pos.
func (v *PagedVolume[V]) lookup(pos model.Vec3) *Chunk[V] {
	i := v.home(pos)
	for range v.slots {
		c := v.slots[i]
		if c == nil {
			return nil
		}
		if c.position == pos {
			return c
		}
		i = (i + 1) & v.slotMask
	}
	return nil
}

// freeSlot returns the first empty slot on pos's probe sequence, or -1.
func (v *PagedVolume[V]) freeSlot(pos model.Vec3) int {
	i := v.home(pos)
	for range v.slots {
		if v.slots[i] == nil {
			return int(i)
		}
		i = (i + 1) & v.slotMask
	}
	return -1
}

// create pages in a chunk that is not in the table and inserts it.
func (v *PagedVolume[V]) create(ctx context.Context, pos model.Vec3) (*Chunk[V], error) {
	slot := v.freeSlot(pos)
	if slot < 0 {
		if err := v.discardOldest(); err != nil {
			return nil, err
		}
		slot = v.freeSlot(pos)
	}

	c := newChunk[V](v.layout, pos, v.morton)
	if v.pager != nil {
		if err := v.pageIn(ctx, c); err != nil {
			return nil, err
		}
	}

	c.slot = slot
	v.slots[slot] = c
	v.known++
	return c, nil
}

func (v *PagedVolume[V]) pageIn(ctx context.Context, c *Chunk[V]) error {
	region := c.Region()
	start := time.Now()

	err := v.pager.PageIn(ctx, region, c)
	if err == nil {
		err = v.rc.AcquireIO(ctx, len(c.compressed))
	}

	v.metrics.RecordPageIn(len(c.compressed), time.Since(start), err)
	v.logger.LogPageIn(ctx, region, len(c.compressed), err)
	if err != nil {
		return &PagerError{Op: "page in", Region: region, cause: err}
	}
	v.stats.pageIns++
	return nil
}

// load decompresses a chunk into memory and enforces the resident budget.
func (v *PagedVolume[V]) load(ctx context.Context, c *Chunk[V]) error {
	if err := v.reserve(ctx, c); err != nil {
		return err
	}
	if err := c.decompress(v.compressor); err != nil {
		v.rc.ReleaseMemory(int64(v.chunkBytes))
		return err
	}
	v.resident.Add(uint32(c.slot))

	for int(v.resident.GetCardinality()) > v.maxResident {
		s, ok := v.oldestResident(c)
		if !ok {
			break
		}
		if err := v.evict(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// reserve charges one chunk to the resource controller, evicting this
// volume's least recently used chunks until the controller agrees.
func (v *PagedVolume[V]) reserve(ctx context.Context, keep *Chunk[V]) error {
	for {
		err := v.rc.AcquireMemory(int64(v.chunkBytes))
		if err == nil {
			return nil
		}
		s, ok := v.oldestResident(keep)
		if !ok {
			return fmt.Errorf("chunk %s: %w", keep.position, err)
		}
		if err := v.evict(ctx, s); err != nil {
			return err
		}
	}
}

// oldestResident scans the resident set for the least recently used chunk.
func (v *PagedVolume[V]) oldestResident(keep *Chunk[V]) (int, bool) {
	best, found := 0, false
	var oldest uint64 = math.MaxUint64

	it := v.resident.Iterator()
	for it.HasNext() {
		s := it.Next()
		c := v.slots[s]
		if c == keep {
			continue
		}
		if c.lastAccess < oldest {
			oldest = c.lastAccess
			best, found = int(s), true
		}
	}
	return best, found
}

// evict releases the voxel data of the chunk in slot s. Modified chunks are
// compressed and paged out first; if either step fails, the chunk stays
// resident with its previous compressed payload.
func (v *PagedVolume[V]) evict(ctx context.Context, s int) error {
	c := v.slots[s]
	dirty := c.dirty

	if dirty {
		err := v.writeBack(ctx, c)
		if err != nil {
			v.logger.LogEviction(ctx, c.position, dirty, err)
			return err
		}
	}

	c.release()
	v.resident.Remove(uint32(s))
	v.rc.ReleaseMemory(int64(v.chunkBytes))
	v.stats.evictions++
	v.metrics.RecordEviction(dirty)
	v.logger.LogEviction(ctx, c.position, dirty, nil)
	return nil
}

func (v *PagedVolume[V]) writeBack(ctx context.Context, c *Chunk[V]) error {
	prev := c.compressed
	if err := c.compress(v.compressor, v.scratch); err != nil {
		return err
	}

	if v.pager != nil {
		region := c.Region()
		start := time.Now()

		err := v.rc.AcquireIO(ctx, len(c.compressed))
		if err == nil {
			err = v.pager.PageOut(ctx, region, c)
		}

		v.metrics.RecordPageOut(len(c.compressed), time.Since(start), err)
		v.logger.LogPageOut(ctx, region, len(c.compressed), err)
		if err != nil {
			c.compressed = prev
			return &PagerError{Op: "page out", Region: region, cause: err}
		}
		v.stats.pageOuts++
	}

	c.dirty = false
	return nil
}

// discardOldest removes the least recently used non-resident chunk from the
// table. Without a pager only chunks that never held data qualify, since the
// table is the only copy of everything else.
func (v *PagedVolume[V]) discardOldest() error {
	best := -1
	var oldest uint64 = math.MaxUint64
	for i, c := range v.slots {
		if c == nil || c.data != nil {
			continue
		}
		if v.pager == nil && len(c.compressed) > 0 {
			continue
		}
		if c.lastAccess < oldest {
			oldest = c.lastAccess
			best = i
		}
	}
	if best < 0 {
		return ErrChunkTableFull
	}

	if v.last == v.slots[best] {
		v.last = nil
	}
	v.remove(best)
	v.stats.discards++
	return nil
}

// remove deletes slot i and shifts later entries of the probe run back so
// lookups never stop early.
func (v *PagedVolume[V]) remove(i int) {
	v.slots[i] = nil
	v.known--

	hole := uint32(i)
	j := hole
	for {
		j = (j + 1) & v.slotMask
		c := v.slots[j]
		if c == nil {
			return
		}
		k := v.home(c.position)
		// Leave c alone if its home lies cyclically in (hole, j].
		if hole <= j {
			if hole < k && k <= j {
				continue
			}
		} else if hole < k || k <= j {
			continue
		}

		v.slots[hole] = c
		v.slots[j] = nil
		c.slot = int(hole)
		if v.resident.Contains(j) {
			v.resident.Remove(j)
			v.resident.Add(hole)
		}
		hole = j
	}
}

// chunkFor, touch, layoutInfo, bounds and borderValue form the narrow
// interface the Sampler uses.
func (v *PagedVolume[V]) chunkFor(cx, cy, cz int32) (*Chunk[V], error) {
	return v.chunkAt(context.Background(), cx, cy, cz)
}

func (v *PagedVolume[V]) layoutInfo() *chunkLayout { return v.layout }

func (v *PagedVolume[V]) bounds() model.Region { return v.region }

func (v *PagedVolume[V]) borderValue() V { return v.border }

func (v *PagedVolume[V]) setVoxel(x, y, z int32, value V) error {
	return v.SetVoxel(x, y, z, value)
}
