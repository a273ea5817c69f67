package monado

import (
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// TrackingOrigin is a spatial frame the runtime tracks devices in.
type TrackingOrigin[R Ref] struct {
	ID   uint32
	Name string
	ref  R
}

// TrackingOriginsOf returns every tracking origin. Any failure aborts the
// whole enumeration.
func TrackingOriginsOf[R Ref](r R) ([]TrackingOrigin[R], error) {
	m := r.Monado()

	var count uint32
	err := m.invoke("mnd_root_get_tracking_origin_count", "", func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetTrackingOriginCount(root, &count)
	})
	if err != nil {
		return nil, err
	}

	origins := make([]TrackingOrigin[R], 0, count)
	for id := range count {
		name, err := m.invokeString("mnd_root_get_tracking_origin_name", originTarget(id),
			func(api *mnd.API, root mnd.Root, out **byte) mnd.Result {
				return api.GetTrackingOriginName(root, id, out)
			})
		if err != nil {
			return nil, err
		}
		origins = append(origins, TrackingOrigin[R]{ID: id, Name: name, ref: r})
	}
	return origins, nil
}

// Ref returns the reference the origin reaches its connection through.
func (o TrackingOrigin[R]) Ref() R {
	return o.ref
}

// Offset returns the origin's offset.
func (o TrackingOrigin[R]) Offset() (Pose, error) {
	var out mnd.Pose
	err := o.ref.Monado().invoke("mnd_root_get_tracking_origin_offset", originTarget(o.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetTrackingOriginOffset(root, o.ID, &out)
	})
	if err != nil {
		return Pose{}, err
	}
	return poseFromWire(out), nil
}

// SetOffset sets the origin's offset.
func (o TrackingOrigin[R]) SetOffset(offset Pose) error {
	in := offset.wire()
	return o.ref.Monado().invoke("mnd_root_set_tracking_origin_offset", originTarget(o.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.SetTrackingOriginOffset(root, o.ID, &in)
	})
}
