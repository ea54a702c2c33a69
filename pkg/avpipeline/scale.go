package avpipeline

import (
	"github.com/asticode/go-astiav"

	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// Scaler converts decoded pictures to the encoder's target pixel format
// and dimensions. It is rebuilt only when the source pixel format or
// dimensions change; the destination format and dimensions are fixed
// for the scaler's lifetime.
type Scaler struct {
	ctx *astiav.SoftwareScaleContext
	dst *astiav.Frame

	srcPixelFormat astiav.PixelFormat
	srcWidth       int
	srcHeight      int

	dstPixelFormat astiav.PixelFormat
	dstWidth       int
	dstHeight      int
}

// NewScaler builds a scaler targeting dstPixelFormat at dstWidth x
// dstHeight. The destination dimensions are taken from the first decoded
// picture and never change afterward.
func NewScaler(dstPixelFormat astiav.PixelFormat, dstWidth, dstHeight int) *Scaler {
	return &Scaler{
		dstPixelFormat: dstPixelFormat,
		dstWidth:       dstWidth,
		dstHeight:      dstHeight,
	}
}

// Close releases the current conversion context and destination frame,
// if any.
func (s *Scaler) Close() {
	if s.dst != nil {
		s.dst.Free()
		s.dst = nil
	}
	if s.ctx != nil {
		s.ctx.Free()
		s.ctx = nil
	}
}

// Scale converts src into the scaler's target format, rebuilding the
// underlying conversion context if src's pixel format or dimensions
// differ from the last call. The returned frame is owned by the scaler
// and is overwritten by the next call to Scale.
func (s *Scaler) Scale(src *astiav.Frame) (*astiav.Frame, error) {
	srcPixelFormat := src.PixelFormat()
	srcWidth, srcHeight := src.Width(), src.Height()

	if s.ctx == nil || srcPixelFormat != s.srcPixelFormat || srcWidth != s.srcWidth || srcHeight != s.srcHeight {
		s.Close()

		flags := astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear)
		ctx, err := astiav.CreateSoftwareScaleContext(
			srcWidth, srcHeight, srcPixelFormat,
			s.dstWidth, s.dstHeight, s.dstPixelFormat,
			flags,
		)
		if err != nil {
			return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "building scale context: %v", err)
		}

		dst := astiav.AllocFrame()
		dst.SetWidth(s.dstWidth)
		dst.SetHeight(s.dstHeight)
		dst.SetPixelFormat(s.dstPixelFormat)
		if err := dst.AllocBuffer(1); err != nil {
			dst.Free()
			ctx.Free()
			return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "allocating scale destination buffer: %v", err)
		}

		s.ctx = ctx
		s.dst = dst
		s.srcPixelFormat, s.srcWidth, s.srcHeight = srcPixelFormat, srcWidth, srcHeight
	}

	if err := s.dst.MakeWritable(); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "making scale destination writable: %v", err)
	}
	if err := s.ctx.ScaleFrame(src, s.dst); err != nil {
		return nil, ugoiraerr.Newf(ugoiraerr.UnableScale, "scaling frame: %v", err)
	}
	return s.dst, nil
}

// ChooseDestinationPixelFormat implements the dst_pixfmt selection rule:
// force 4:2:0 planar 8-bit YUV if requested, otherwise keep the decoder's
// format when the encoder supports it, else fall back to 4:2:0.
func ChooseDestinationPixelFormat(decoderFormat astiav.PixelFormat, encoderSupported []astiav.PixelFormat, forceYUV420P bool) astiav.PixelFormat {
	if forceYUV420P {
		return astiav.PixelFormatYuv420P
	}
	for _, f := range encoderSupported {
		if f == decoderFormat {
			return decoderFormat
		}
	}
	return astiav.PixelFormatYuv420P
}
