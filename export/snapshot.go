package export

import (
	"github.com/golang/snappy"

	"github.com/proftrace/proftrace/model"
)

// CompressSnapshot wraps MarshalJSON's output in a single snappy block,
// for session exports spanning many profiles where plain JSON would
// otherwise dominate export size. Grounded on the teacher's own use of
// snappy.Encode for its texture-atlas cache (cmd/gotraceui/textures.go) —
// same library, same "compress a byte blob before it hits disk" concern,
// applied here to a session snapshot instead of a GPU texture.
func CompressSnapshot(p *model.Profile) ([]byte, error) {
	raw, err := MarshalJSON(p)
	if err != nil {
		return nil, &model.ExportError{Kind: model.SerializationFailed, Reason: err.Error()}
	}
	return snappy.Encode(nil, raw), nil
}

// DecompressSnapshot reverses CompressSnapshot and rebuilds the Profile.
func DecompressSnapshot(compressed []byte) (*model.Profile, error) {
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, &model.ExportError{Kind: model.SerializationFailed, Reason: err.Error()}
	}
	return UnmarshalJSON(raw)
}
