package pager

import (
	"context"
	"encoding/binary"
	"errors"
	"path"
	"strings"

	"github.com/hupe1980/voxgo/blobstore"
	"github.com/hupe1980/voxgo/internal/hash"
	"github.com/hupe1980/voxgo/model"
)

const checksumSize = 4

// BlobPager stores one blob per chunk in a BlobStore.
type BlobPager struct {
	store    blobstore.BlobStore
	prefix   string
	checksum bool
}

var _ Pager = (*BlobPager)(nil)

// BlobOption configures a BlobPager.
type BlobOption func(*BlobPager)

// WithChecksum appends a CRC32C trailer to every stored payload and
// verifies it on PageIn.
func WithChecksum() BlobOption {
	return func(p *BlobPager) {
		p.checksum = true
	}
}

// WithPrefix stores blobs under prefix (e.g. "terrain/").
func WithPrefix(prefix string) BlobOption {
	return func(p *BlobPager) {
		p.prefix = prefix
	}
}

// NewBlobPager creates a pager over store.
func NewBlobPager(store blobstore.BlobStore, opts ...BlobOption) *BlobPager {
	p := &BlobPager{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *BlobPager) key(r model.Region) string {
	if p.prefix == "" {
		return Name(r)
	}
	return path.Join(p.prefix, Name(r))
}

// PageIn loads a chunk's payload. A missing blob leaves h untouched.
func (p *BlobPager) PageIn(ctx context.Context, region model.Region, h Handle) error {
	data, err := p.store.Get(ctx, p.key(region))
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if p.checksum {
		if len(data) < checksumSize {
			return ErrChecksumMismatch
		}
		n := len(data) - checksumSize
		if binary.LittleEndian.Uint32(data[n:]) != hash.CRC32C(data[:n]) {
			return ErrChecksumMismatch
		}
		data = data[:n]
	}

	h.SetCompressedData(data)
	return nil
}

// PageOut stores a chunk's payload, replacing any earlier version.
func (p *BlobPager) PageOut(ctx context.Context, region model.Region, h Handle) error {
	data := h.CompressedData()
	if p.checksum {
		buf := make([]byte, len(data)+checksumSize)
		copy(buf, data)
		binary.LittleEndian.PutUint32(buf[len(data):], hash.CRC32C(data))
		data = buf
	}
	return p.store.Put(ctx, p.key(region), data)
}

// Delete removes a stored chunk.
func (p *BlobPager) Delete(ctx context.Context, region model.Region) error {
	return p.store.Delete(ctx, p.key(region))
}

// Regions lists the regions of all stored chunks.
func (p *BlobPager) Regions(ctx context.Context) ([]model.Region, error) {
	prefix := ""
	if p.prefix != "" {
		prefix = strings.TrimSuffix(p.prefix, "/") + "/"
	}
	names, err := p.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	regions := make([]model.Region, 0, len(names))
	for _, name := range names {
		r, err := ParseName(path.Base(name))
		if err != nil {
			// Foreign blobs sharing the store are skipped.
			continue
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// FilePager keeps one file per chunk in a directory. Files hold the raw
// compressed payload with no header.
type FilePager struct {
	*BlobPager
	dir string
}

// NewFilePager creates a pager writing into dir. The directory is created
// on the first PageOut.
func NewFilePager(dir string) *FilePager {
	return &FilePager{
		BlobPager: NewBlobPager(blobstore.NewLocalStore(dir)),
		dir:       dir,
	}
}

// Dir returns the directory the pager writes to.
func (p *FilePager) Dir() string {
	return p.dir
}
