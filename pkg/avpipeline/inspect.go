package avpipeline

import (
	"github.com/asticode/go-astiav"

	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// ReadMetadata reopens a produced MP4 as a demuxer and returns its
// container-level metadata dictionary, the same map WriteHeader wrote
// into the muxer's formatCtx.Metadata() during Open. It exists to give
// tests an end-to-end check that container metadata actually round-trips
// through the muxer, not just that Open's metadata loop ran without
// erroring.
func ReadMetadata(path string) (map[string]string, error) {
	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, ugoiraerr.New(ugoiraerr.OOM, "AllocFormatContext")
	}
	defer fc.Free()

	if err := fc.OpenInput(path, nil, nil); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "opening %q to read metadata: %v", path, err)
	}

	if err := fc.FindStreamInfo(nil); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "reading stream info from %q: %v", path, err)
	}

	return dictionaryToMap(fc.Metadata()), nil
}

// dictionaryToMap drains an astiav.Dictionary into a plain map by
// repeatedly calling Get with the previous entry until it returns nil.
func dictionaryToMap(d *astiav.Dictionary) map[string]string {
	result := make(map[string]string)

	var entry *astiav.DictionaryEntry
	for {
		entry = d.Get("", entry, astiav.DictionaryFlags(astiav.DictionaryFlagIgnoreSuffix))
		if entry == nil {
			break
		}
		result[entry.Key()] = entry.Value()
	}
	return result
}
