// Package avpipeline implements the per-frame decode, the cached
// scaler, the persistent encoder/muxer, and the PTS timing driver that
// together turn a sequence of still-image archive entries into a single
// H.264/MP4 stream.
package avpipeline

import (
	"errors"

	"github.com/asticode/go-astiav"
	"github.com/ideamans/go-l10n"

	"github.com/ideamans/ugoira2mp4/pkg/iosource"
	"github.com/ideamans/ugoira2mp4/pkg/ports"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// DecodedPicture is the single raw frame decoded from one archive entry,
// along with the stream's sample aspect ratio needed by the encoder when
// it is set up from the first picture.
type DecodedPicture struct {
	Frame             *astiav.Frame
	Width             int
	Height            int
	PixelFormat       astiav.PixelFormat
	SampleAspectRatio astiav.Rational
}

// Free releases the underlying frame.
func (p *DecodedPicture) Free() {
	if p.Frame != nil {
		p.Frame.Free()
		p.Frame = nil
	}
}

// DecodeEntry opens name in the archive, demuxes it with no explicit
// format hint, decodes the first video picture found, and returns it.
// All per-entry resources (demuxer, custom IO context, archive entry
// handle, codec context) are closed before DecodeEntry returns, in LIFO
// order, regardless of outcome; only the returned frame outlives the
// call.
func DecodeEntry(archive ports.Archive, name string, logger ports.Logger) (*DecodedPicture, error) {
	entry, err := archive.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer entry.Close()

	src := iosource.New(entry)
	ioCtx, err := iosource.NewIOContext(src)
	if err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "building custom io context for %q: %v", name, err)
	}
	defer ioCtx.Free()

	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, ugoiraerr.New(ugoiraerr.OOM, "AllocFormatContext")
	}
	defer fc.Free()
	fc.SetPb(ioCtx)

	if err := fc.OpenInput("", nil, nil); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "opening %q: %v", name, err)
	}
	defer fc.CloseInput()

	if err := fc.FindStreamInfo(nil); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "probing %q: %v", name, err)
	}

	videoStreamIndex := -1
	for streamIndex, s := range fc.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			videoStreamIndex = streamIndex
			break
		}
	}
	if videoStreamIndex < 0 {
		return nil, ugoiraerr.Newf(ugoiraerr.NoVideoStream, "no video stream in %q", name)
	}
	stream := fc.Streams()[videoStreamIndex]

	params := stream.CodecParameters()
	decoder := astiav.FindDecoder(params.CodecID())
	if decoder == nil {
		return nil, ugoiraerr.Newf(ugoiraerr.NoAvailableDecoder, "no decoder for codec %v in %q", params.CodecID(), name)
	}

	decCtx := astiav.AllocCodecContext(decoder)
	if decCtx == nil {
		return nil, ugoiraerr.New(ugoiraerr.OOM, "AllocCodecContext")
	}
	defer decCtx.Free()

	if err := params.ToCodecContext(decCtx); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "copying codec parameters for %q: %v", name, err)
	}
	if err := decCtx.Open(decoder, nil); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "opening decoder for %q: %v", name, err)
	}

	pkt := astiav.AllocPacket()
	defer pkt.Free()
	frame := astiav.AllocFrame()

	picture, err := readFirstPicture(fc, decCtx, pkt, frame, videoStreamIndex)
	if err != nil {
		frame.Free()
		return nil, err
	}

	if logger != nil {
		logger.Debug(l10n.F("Decoded %s into a %dx%d picture", name, picture.Width, picture.Height))
	}
	return picture, nil
}

// readFirstPicture drives the demux→decode loop until exactly one
// picture has been produced. EOF reached after at least one decoded
// picture is success, matching the corrected behavior noted for the
// original read loop; EOF with zero pictures is surfaced as UnableScale,
// like the other decode failures below, since the entry produced no
// usable picture at all.
func readFirstPicture(fc *astiav.FormatContext, decCtx *astiav.CodecContext, pkt *astiav.Packet, frame *astiav.Frame, videoStreamIndex int) (*DecodedPicture, error) {
	for {
		err := fc.ReadFrame(pkt)
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				return nil, ugoiraerr.New(ugoiraerr.UnableScale, "entry contained no decodable picture")
			}
			return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "demuxing: %v", err)
		}
		if pkt.StreamIndex() != videoStreamIndex {
			pkt.Unref()
			continue
		}

		sendErr := decCtx.SendPacket(pkt)
		pkt.Unref()
		if sendErr != nil && !errors.Is(sendErr, astiav.ErrEagain) {
			return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "sending packet to decoder: %v", sendErr)
		}

		recvErr := decCtx.ReceiveFrame(frame)
		if recvErr == nil {
			return &DecodedPicture{
				Frame:             frame,
				Width:             frame.Width(),
				Height:            frame.Height(),
				PixelFormat:       frame.PixelFormat(),
				SampleAspectRatio: decCtx.SampleAspectRatio(),
			}, nil
		}
		if !errors.Is(recvErr, astiav.ErrEagain) && !errors.Is(recvErr, astiav.ErrEof) {
			return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "receiving decoded frame: %v", recvErr)
		}
		// EAGAIN: decoder wants another packet before it can emit one. Loop.
	}
}
