package avpipeline

import (
	"errors"
	"strconv"

	"github.com/asticode/go-astiav"

	"github.com/ideamans/ugoira2mp4/pkg/fpsplan"
	"github.com/ideamans/ugoira2mp4/pkg/options"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// Encoder is the single long-lived H.264 encoder and MP4 muxer that
// consumes rescaled pictures with assigned PTS for the entire
// conversion.
type Encoder struct {
	formatCtx *astiav.FormatContext
	ioCtx     *astiav.IOContext
	codecCtx  *astiav.CodecContext
	stream    *astiav.Stream
	pkt       *astiav.Packet

	headerWritten bool
}

// Open constructs the encoder and stream for width x height at pixfmt,
// applies the resolved options (preset/crf/level/profile) as libx264
// private options, writes the supplied metadata into the container, and
// writes the muxer header. It must be called exactly once, after the
// first picture has been decoded and scaled, since width/height/pixfmt
// are not known before then.
func Open(dst string, width, height int, sampleAspectRatio astiav.Rational, pixfmt astiav.PixelFormat, plan fpsplan.Plan, opts options.Map, metadata options.Map) (*Encoder, error) {
	codec := astiav.FindEncoder(astiav.CodecIDH264)
	if codec == nil {
		return nil, ugoiraerr.New(ugoiraerr.NoAvailableEncoder, "no H.264 encoder available")
	}

	codecCtx := astiav.AllocCodecContext(codec)
	if codecCtx == nil {
		return nil, ugoiraerr.New(ugoiraerr.OOM, "AllocCodecContext")
	}

	codecCtx.SetWidth(width)
	codecCtx.SetHeight(height)
	codecCtx.SetSampleAspectRatio(sampleAspectRatio)
	codecCtx.SetPixelFormat(pixfmt)
	fpsRational := astiav.NewRational(plan.FPS.Num, plan.FPS.Den)
	codecCtx.SetTimeBase(astiav.NewRational(1, fpsplan.AVTimeBase))
	codecCtx.SetFramerate(fpsRational)

	privOpts := astiav.NewDictionary()
	defer privOpts.Free()

	crf, err := opts.CRF()
	if err != nil {
		codecCtx.Free()
		return nil, err
	}
	_ = privOpts.Set("preset", opts.Preset(), 0)
	_ = privOpts.Set("crf", strconv.Itoa(crf), 0)
	if level, ok := opts.Level(); ok {
		_ = privOpts.Set("level", level, 0)
	}
	if profile, ok := opts.Profile(); ok {
		_ = privOpts.Set("profile", profile, 0)
	}

	if err := codecCtx.Open(codec, privOpts); err != nil {
		codecCtx.Free()
		return nil, ugoiraerr.Newf(ugoiraerr.NoAvailableEncoder, "opening H.264 encoder: %v", err)
	}

	formatCtx, err := astiav.AllocOutputFormatContext(nil, "mp4", dst)
	if err != nil || formatCtx == nil {
		codecCtx.Free()
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "AllocOutputFormatContext: %v", err)
	}

	stream := formatCtx.NewStream(codec)
	if stream == nil {
		formatCtx.Free()
		codecCtx.Free()
		return nil, ugoiraerr.New(ugoiraerr.OOM, "NewStream")
	}
	if err := codecCtx.ToCodecParameters(stream.CodecParameters()); err != nil {
		formatCtx.Free()
		codecCtx.Free()
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "copying codec parameters to stream: %v", err)
	}
	stream.SetTimeBase(codecCtx.TimeBase())
	stream.SetAvgFrameRate(fpsRational)
	stream.SetRFrameRate(fpsRational)

	for k, v := range metadata {
		_ = formatCtx.Metadata().Set(k, v, 0)
	}

	ioFlags := astiav.NewIOContextFlags(astiav.IOContextFlagWrite)
	ioCtx, err := astiav.OpenIOContext(dst, ioFlags, nil, nil)
	if err != nil {
		formatCtx.Free()
		codecCtx.Free()
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "opening output file: %v", err)
	}
	formatCtx.SetPb(ioCtx)

	if err := formatCtx.WriteHeader(nil); err != nil {
		ioCtx.Close()
		ioCtx.Free()
		formatCtx.Free()
		codecCtx.Free()
		return nil, ugoiraerr.Newf(ugoiraerr.OpenFile, "writing MP4 header: %v", err)
	}

	return &Encoder{
		formatCtx:     formatCtx,
		ioCtx:         ioCtx,
		codecCtx:      codecCtx,
		stream:        stream,
		pkt:           astiav.AllocPacket(),
		headerWritten: true,
	}, nil
}

// StreamTimeBase returns the output stream's time base, which the
// timing driver rescales delays into.
func (e *Encoder) StreamTimeBase() astiav.Rational {
	return e.stream.TimeBase()
}

// SupportedPixelFormats reports the pixel formats the H.264 encoder
// advertises, used by the scaler's destination-format selection rule.
func SupportedPixelFormats() []astiav.PixelFormat {
	codec := astiav.FindEncoder(astiav.CodecIDH264)
	if codec == nil {
		return nil
	}
	return codec.PixelFormats()
}

// EncodeFrame stamps frame with pts, sends it to the encoder, and drains
// and muxes every packet the encoder is willing to emit without
// blocking for more input.
func (e *Encoder) EncodeFrame(frame *astiav.Frame, pts int64) error {
	frame.SetPts(pts)
	if err := e.codecCtx.SendFrame(frame); err != nil && !errors.Is(err, astiav.ErrEagain) {
		return ugoiraerr.Newf(ugoiraerr.UnableScale, "sending frame to encoder: %v", err)
	}
	return e.drain()
}

// Close flushes the encoder with a null frame, drains remaining packets,
// writes the trailer, and releases every resource the encoder owns.
func (e *Encoder) Close() error {
	var flushErr error
	if err := e.codecCtx.SendFrame(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		flushErr = ugoiraerr.Newf(ugoiraerr.UnableScale, "flushing encoder: %v", err)
	} else if err := e.drain(); err != nil {
		flushErr = err
	}

	if flushErr == nil {
		if err := e.formatCtx.WriteTrailer(); err != nil {
			flushErr = ugoiraerr.Newf(ugoiraerr.OpenFile, "writing MP4 trailer: %v", err)
		}
	}

	e.pkt.Free()
	e.ioCtx.Close()
	e.ioCtx.Free()
	e.formatCtx.Free()
	e.codecCtx.Free()

	return flushErr
}

// drain repeatedly calls ReceivePacket until the encoder reports EAGAIN
// (needs more input) or EOF (fully flushed), writing every packet it
// produces with interleaved-packet semantics.
func (e *Encoder) drain() error {
	for {
		err := e.codecCtx.ReceivePacket(e.pkt)
		if err != nil {
			if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
				return nil
			}
			return ugoiraerr.Newf(ugoiraerr.UnableScale, "receiving encoded packet: %v", err)
		}

		e.pkt.SetStreamIndex(e.stream.Index())
		e.pkt.RescaleTs(e.codecCtx.TimeBase(), e.stream.TimeBase())

		writeErr := e.formatCtx.WriteInterleavedFrame(e.pkt)
		e.pkt.Unref()
		if writeErr != nil {
			return ugoiraerr.Newf(ugoiraerr.OpenFile, "writing muxed packet: %v", writeErr)
		}
	}
}
