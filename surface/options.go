package surface

import (
	"errors"

	"github.com/hupe1980/voxgo"
)

// ErrInvalidPredicate is returned when the quad predicate does not match the
// volume's voxel type.
var ErrInvalidPredicate = errors.New("surface: quad predicate does not match voxel type")

// QuadPredicate decides whether a face is needed between two neighbouring
// voxels. back is the voxel on the negative side of the face and front the
// one on the positive side. A face pointing towards front is emitted when
// isQuadNeeded(back, front) holds; one pointing towards back when
// isQuadNeeded(front, back) holds. The returned value is the face material.
type QuadPredicate[V comparable] func(back, front V) (V, bool)

// DefaultIsQuadNeeded emits a face between a solid (non-zero) voxel and an
// empty one, facing out of the solid voxel.
func DefaultIsQuadNeeded[V comparable](back, front V) (V, bool) {
	var zero V
	if back != zero && front == zero {
		return back, true
	}
	return zero, false
}

// MaterialBoundary also emits faces between two solid voxels of different
// material, so every material gets a closed hull.
func MaterialBoundary[V comparable](back, front V) (V, bool) {
	var zero V
	if back != zero && back != front {
		return back, true
	}
	return zero, false
}

type options struct {
	merge     bool
	predicate any
	logger    *voxgo.Logger
	metrics   voxgo.MetricsCollector
}

// Option configures ExtractCubic.
type Option func(*options)

func defaultOptions() options {
	return options{
		merge:   true,
		logger:  voxgo.NoopLogger(),
		metrics: voxgo.NoopMetricsCollector{},
	}
}

// WithQuadMerging enables or disables merging of coplanar faces into larger
// rectangles. Merging is on by default.
func WithQuadMerging(enabled bool) Option {
	return func(o *options) {
		o.merge = enabled
	}
}

// WithQuadPredicate replaces DefaultIsQuadNeeded. V must be the voxel type
// of the volume passed to ExtractCubic.
func WithQuadPredicate[V comparable](fn QuadPredicate[V]) Option {
	return func(o *options) {
		if fn != nil {
			o.predicate = fn
		}
	}
}

// WithLogger sets the logger used for extraction.
func WithLogger(l *voxgo.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the collector extraction passes are reported to.
func WithMetricsCollector(mc voxgo.MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}
