package pager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/voxgo/model"
)

// Handle is the paging boundary of a chunk.
type Handle interface {
	// CompressedData returns the chunk's compressed payload. The slice must
	// not be retained after the call returns.
	CompressedData() []byte
	// SetCompressedData replaces the chunk's compressed payload. The chunk
	// takes ownership of data.
	SetCompressedData(data []byte)
}

// Pager loads and persists compressed chunks keyed by the region they cover.
type Pager interface {
	// PageIn fills h with previously stored data for region, if any.
	PageIn(ctx context.Context, region model.Region, h Handle) error
	// PageOut stores h's compressed data under region.
	PageOut(ctx context.Context, region model.Region, h Handle) error
}

// ErrChecksumMismatch is returned by PageIn when a stored payload fails
// its integrity check.
var ErrChecksumMismatch = errors.New("pager: checksum mismatch")

// Name returns the storage key for a chunk region:
// "{lx}_{ly}_{lz}_{ux}_{uy}_{uz}".
func Name(r model.Region) string {
	var b strings.Builder
	b.Grow(48)
	for i, v := range [6]int32{r.Lower.X, r.Lower.Y, r.Lower.Z, r.Upper.X, r.Upper.Y, r.Upper.Z} {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}

// ParseName is the inverse of Name.
func ParseName(name string) (model.Region, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 6 {
		return model.Region{}, fmt.Errorf("pager: malformed chunk name %q", name)
	}

	var c [6]int32
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return model.Region{}, fmt.Errorf("pager: malformed chunk name %q: %w", name, err)
		}
		c[i] = int32(v)
	}
	return model.NewRegionFromCoords(c[0], c[1], c[2], c[3], c[4], c[5]), nil
}

// Unimplemented is a Pager whose methods report programmer misuse.
// Embed it to get explicit failures for methods a partial implementation
// does not override.
type Unimplemented struct{}

// PageIn implements Pager.
func (Unimplemented) PageIn(context.Context, model.Region, Handle) error {
	return &model.NotImplementedError{Op: "pager.PageIn"}
}

// PageOut implements Pager.
func (Unimplemented) PageOut(context.Context, model.Region, Handle) error {
	return &model.NotImplementedError{Op: "pager.PageOut"}
}

// Func adapts a pair of functions to Pager. A nil function is a no-op,
// which makes Func convenient for procedural generators that only page in.
type Func struct {
	In  func(ctx context.Context, region model.Region, h Handle) error
	Out func(ctx context.Context, region model.Region, h Handle) error
}

// PageIn implements Pager.
func (f Func) PageIn(ctx context.Context, region model.Region, h Handle) error {
	if f.In == nil {
		return nil
	}
	return f.In(ctx, region, h)
}

// PageOut implements Pager.
func (f Func) PageOut(ctx context.Context, region model.Region, h Handle) error {
	if f.Out == nil {
		return nil
	}
	return f.Out(ctx, region, h)
}
