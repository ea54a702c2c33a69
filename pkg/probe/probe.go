// Package probe inspects an already-produced MP4 file's box structure to
// report track and sample metadata, independent of the encoder that
// wrote it. It exists to make the duration/frame-count/config-passthrough
// testable properties checkable mechanically, without shelling out to
// ffprobe.
package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// Codec identifies the sample entry type found in a track's stsd box.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecUnknown Codec = "unknown"
)

// Report summarizes one MP4 video track.
type Report struct {
	SampleCount     int
	Timescale       uint32
	DurationTicks   uint64
	DurationSeconds float64
	AvgFrameRate    float64
	Width           uint16
	Height          uint16
	Codec           Codec

	// ProfileIDC and LevelIDC are the H.264 profile_idc/level_idc bytes
	// read from the avcC box's SPS, present whenever Codec is
	// CodecH264. They mirror whatever "profile"/"level" libx264 option
	// was requested at encode time, since a compliant muxer copies
	// them straight out of the SPS it was handed.
	ProfileIDC uint8
	LevelIDC   uint8
}

// ProfileName maps ProfileIDC to the libx264 "profile" option string
// that produces it, or "" if it doesn't match a known profile.
func (r *Report) ProfileName() string {
	switch r.ProfileIDC {
	case 66:
		return "baseline"
	case 77:
		return "main"
	case 100:
		return "high"
	case 110:
		return "high10"
	case 122:
		return "high422"
	case 244:
		return "high444"
	default:
		return ""
	}
}

// LevelName renders LevelIDC as the "X.Y" string libx264's "level"
// option expects, e.g. 31 -> "3.1".
func (r *Report) LevelName() string {
	if r.LevelIDC == 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d", r.LevelIDC/10, r.LevelIDC%10)
}

// Inspect opens path and reports the first video track's metadata.
func Inspect(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "opening %q for inspection: %v", path, err)
	}
	defer f.Close()
	return InspectReader(f)
}

// InspectReader is Inspect over an already-open reader.
func InspectReader(r io.ReadSeeker) (*Report, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "decoding mp4 box structure: %v", err)
	}
	if mp4File.Moov == nil {
		return nil, ugoiraerr.New(ugoiraerr.OpenFile, "mp4 has no moov box")
	}

	for _, trak := range mp4File.Moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		return reportForVideoTrack(trak)
	}
	return nil, ugoiraerr.New(ugoiraerr.NoVideoStream, "mp4 has no video track")
}

func reportForVideoTrack(trak *mp4.TrakBox) (*Report, error) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsz == nil {
		return nil, ugoiraerr.New(ugoiraerr.OpenFile, "video track has no sample size box")
	}
	stbl := trak.Mdia.Minf.Stbl

	var timescale uint32 = 1000
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	sampleCount := int(stbl.Stsz.SampleNumber)

	var durationTicks uint64
	if trak.Mdia.Mdhd != nil {
		durationTicks = trak.Mdia.Mdhd.Duration
	}

	var width, height uint16
	var profileIDC, levelIDC uint8
	codec := CodecUnknown
	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				width, height = vse.Width, vse.Height
				if vse.AvcC != nil && len(vse.AvcC.SPSnalus) > 0 {
					profileIDC, levelIDC = spsProfileLevel(vse.AvcC.SPSnalus[0])
				}
			}
			switch child.Type() {
			case "avc1", "avc3":
				codec = CodecH264
			}
		}
	}

	report := &Report{
		SampleCount:   sampleCount,
		Timescale:     timescale,
		DurationTicks: durationTicks,
		Width:         width,
		Height:        height,
		Codec:         codec,
		ProfileIDC:    profileIDC,
		LevelIDC:      levelIDC,
	}
	if timescale > 0 {
		report.DurationSeconds = float64(durationTicks) / float64(timescale)
	}
	if report.DurationSeconds > 0 {
		report.AvgFrameRate = float64(sampleCount) / report.DurationSeconds
	}
	return report, nil
}

// spsProfileLevel reads profile_idc and level_idc from a raw SPS NALU
// (no Annex B start code). Both sit at fixed byte offsets right after
// the one-byte NAL header, ahead of anything that needs emulation
// prevention unescaping.
func spsProfileLevel(sps []byte) (profileIDC, levelIDC uint8) {
	if len(sps) < 4 {
		return 0, 0
	}
	return sps[1], sps[3]
}

// String renders a one-line human-readable summary, used by the CLI's
// inspect subcommand.
func (r *Report) String() string {
	return fmt.Sprintf("%dx%d, %s profile=%s level=%s, %d samples, %.3fs @ %.2ffps (timescale=%d)",
		r.Width, r.Height, r.Codec, r.ProfileName(), r.LevelName(), r.SampleCount, r.DurationSeconds, r.AvgFrameRate, r.Timescale)
}
