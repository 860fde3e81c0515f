package pager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/voxgo/blobstore"
	"github.com/hupe1980/voxgo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handle struct {
	data []byte
}

func (h *handle) CompressedData() []byte     { return h.data }
func (h *handle) SetCompressedData(d []byte) { h.data = d }

var testRegion = model.NewRegionFromCoords(-32, 0, 32, -1, 31, 63)

func TestName(t *testing.T) {
	assert.Equal(t, "-32_0_32_-1_31_63", Name(testRegion))

	r, err := ParseName("-32_0_32_-1_31_63")
	require.NoError(t, err)
	assert.Equal(t, testRegion, r)

	for _, bad := range []string{"", "1_2_3", "a_0_0_0_0_0", "0_0_0_0_0_99999999999"} {
		_, err := ParseName(bad)
		assert.Error(t, err, bad)
	}
}

func runPagerContract(t *testing.T, p Pager) {
	t.Helper()
	ctx := context.Background()

	h := &handle{}
	require.NoError(t, p.PageIn(ctx, testRegion, h))
	assert.Nil(t, h.data, "missing chunk must leave the handle untouched")

	require.NoError(t, p.PageOut(ctx, testRegion, &handle{data: []byte{9, 8, 7}}))
	require.NoError(t, p.PageIn(ctx, testRegion, h))
	assert.Equal(t, []byte{9, 8, 7}, h.data)

	// Overwrite.
	require.NoError(t, p.PageOut(ctx, testRegion, &handle{data: []byte{1}}))
	require.NoError(t, p.PageIn(ctx, testRegion, h))
	assert.Equal(t, []byte{1}, h.data)

	// A different region is independent.
	other := testRegion
	other.Shift(model.Vec3{X: 32})
	h2 := &handle{}
	require.NoError(t, p.PageIn(ctx, other, h2))
	assert.Nil(t, h2.data)
}

func TestBlobPager(t *testing.T) {
	runPagerContract(t, NewBlobPager(blobstore.NewMemoryStore()))
}

func TestBlobPagerWithChecksum(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	p := NewBlobPager(store, WithChecksum(), WithPrefix("vol"))
	runPagerContract(t, p)

	raw, err := store.Get(ctx, "vol/"+Name(testRegion))
	require.NoError(t, err)
	assert.Len(t, raw, 1+checksumSize)

	raw[0] ^= 0xFF
	require.NoError(t, store.Put(ctx, "vol/"+Name(testRegion), raw))
	assert.ErrorIs(t, p.PageIn(ctx, testRegion, &handle{}), ErrChecksumMismatch)

	require.NoError(t, store.Put(ctx, "vol/"+Name(testRegion), []byte{1}))
	assert.ErrorIs(t, p.PageIn(ctx, testRegion, &handle{}), ErrChecksumMismatch)
}

func TestBlobPagerRegions(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	p := NewBlobPager(store, WithPrefix("vol/"))

	a := model.NewRegionFromCoords(0, 0, 0, 15, 15, 15)
	b := model.NewRegionFromCoords(16, 0, 0, 31, 15, 15)
	require.NoError(t, p.PageOut(ctx, a, &handle{data: []byte{1}}))
	require.NoError(t, p.PageOut(ctx, b, &handle{data: []byte{2}}))
	require.NoError(t, store.Put(ctx, "vol/README", []byte("x")))
	require.NoError(t, store.Put(ctx, "other/0_0_0_1_1_1", []byte("x")))

	regions, err := p.Regions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Region{a, b}, regions)

	require.NoError(t, p.Delete(ctx, a))
	regions, err = p.Regions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Region{b}, regions)
}

type failingStore struct {
	*blobstore.MemoryStore
	err error
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }

func TestBlobPagerSurfacesStoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	p := NewBlobPager(&failingStore{MemoryStore: blobstore.NewMemoryStore(), err: boom})
	assert.ErrorIs(t, p.PageIn(context.Background(), testRegion, &handle{}), boom)
}

func TestFilePager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chunks")
	p := NewFilePager(dir)
	assert.Equal(t, dir, p.Dir())
	runPagerContract(t, p)

	// Raw payload, no header, named after the region.
	raw, err := os.ReadFile(filepath.Join(dir, "-32_0_32_-1_31_63"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, raw)
}

func TestFilePagerIOError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the chunk file should be makes the read fail with
	// something other than "not found".
	require.NoError(t, os.Mkdir(filepath.Join(dir, Name(testRegion)), 0o755))

	p := NewFilePager(dir)
	err := p.PageIn(context.Background(), testRegion, &handle{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestSQLitePager(t *testing.T) {
	p, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "chunks.sqlite"))
	require.NoError(t, err)
	defer p.Close()

	runPagerContract(t, p)

	n, err := p.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Empty payloads are stored, not dropped.
	require.NoError(t, p.PageOut(context.Background(), testRegion, &handle{}))
	h := &handle{data: []byte{5}}
	require.NoError(t, p.PageIn(context.Background(), testRegion, h))
	assert.Empty(t, h.data)
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestUnimplemented(t *testing.T) {
	var p Pager = Unimplemented{}
	err := p.PageIn(context.Background(), testRegion, &handle{})
	assert.ErrorIs(t, err, model.ErrNotImplemented)

	var nie *model.NotImplementedError
	require.ErrorAs(t, p.PageOut(context.Background(), testRegion, &handle{}), &nie)
	assert.Equal(t, "pager.PageOut", nie.Op)
}

func TestFunc(t *testing.T) {
	var calls int
	p := Func{In: func(_ context.Context, r model.Region, h Handle) error {
		calls++
		h.SetCompressedData([]byte(Name(r)))
		return nil
	}}

	h := &handle{}
	require.NoError(t, p.PageIn(context.Background(), testRegion, h))
	assert.Equal(t, Name(testRegion), string(h.data))
	require.NoError(t, p.PageOut(context.Background(), testRegion, h))
	assert.Equal(t, 1, calls)
}
