// Package convert implements the top-level ugoira-to-MP4 conversion
// orchestrator: it wires the frame list, FPS planner, archive reader,
// per-frame decoder, scaler, timing driver, and encoder/muxer together
// in the order the conversion core specifies.
package convert

import (
	"context"

	"github.com/asticode/go-astiav"
	"github.com/ideamans/go-l10n"

	"github.com/ideamans/ugoira2mp4/pkg/adapters/zipreader"
	"github.com/ideamans/ugoira2mp4/pkg/avpipeline"
	"github.com/ideamans/ugoira2mp4/pkg/fpsplan"
	"github.com/ideamans/ugoira2mp4/pkg/frame"
	"github.com/ideamans/ugoira2mp4/pkg/options"
	"github.com/ideamans/ugoira2mp4/pkg/ports"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// Convert reads frames out of the ZIP archive at src, encodes them into
// a single H.264/MP4 file at dst at a fixed rate derived from maxFPS,
// and returns nil on success or a tagged *ugoiraerr.Error describing
// what went wrong.
//
// fs and logger may be nil; a nil logger means "do not log", and a nil
// fs skips the pre-existing output file check entirely (Convert never
// touches the filesystem directly beyond what fs exposes).
func Convert(ctx context.Context, fs ports.FileSystem, logger ports.Logger, src, dst string, frames frame.List, maxFPS float64, opts, metadata options.Map) *ugoiraerr.Error {
	plan, err := fpsplan.Compute(frames, maxFPS)
	if err != nil {
		return asUgoiraErr(err)
	}
	if _, err := opts.CRF(); err != nil {
		return asUgoiraErr(err)
	}

	if fs != nil {
		exists, err := fs.Exists(dst)
		if err != nil {
			return ugoiraerr.Newf(ugoiraerr.RemoveOutputFileFailed, "checking output path: %v", err)
		}
		if exists {
			if err := fs.Remove(dst); err != nil {
				return ugoiraerr.Newf(ugoiraerr.RemoveOutputFileFailed, "removing pre-existing output file: %v", err)
			}
		}
	}

	if logger != nil {
		logger.Info(l10n.F("Opening archive %s", src))
	}
	archive, err := zipreader.Open(src)
	if err != nil {
		return asUgoiraErr(err)
	}
	defer archive.Close()

	var scaler *avpipeline.Scaler
	var encoder *avpipeline.Encoder
	var driver *avpipeline.Driver
	var dstFormat astiav.PixelFormat
	defer func() {
		if scaler != nil {
			scaler.Close()
		}
	}()

	for i, rec := range frames {
		select {
		case <-ctx.Done():
			if encoder != nil {
				encoder.Close()
			}
			return ugoiraerr.Newf(ugoiraerr.OOM, "conversion canceled: %v", ctx.Err())
		default:
		}

		picture, err := avpipeline.DecodeEntry(archive, rec.File, logger)
		if err != nil {
			if encoder != nil {
				encoder.Close()
			}
			return asUgoiraErr(err)
		}

		if scaler == nil {
			dstFormat = avpipeline.ChooseDestinationPixelFormat(picture.PixelFormat, avpipeline.SupportedPixelFormats(), opts.ForceYUV420P())
			scaler = avpipeline.NewScaler(dstFormat, picture.Width, picture.Height)
		}

		scaled, err := scaler.Scale(picture.Frame)
		picture.Free()
		if err != nil {
			if encoder != nil {
				encoder.Close()
			}
			return asUgoiraErr(err)
		}

		if encoder == nil {
			if logger != nil {
				logger.Info(l10n.F("Opening encoder for %dx%d", picture.Width, picture.Height))
			}
			encoder, err = avpipeline.Open(dst, picture.Width, picture.Height, picture.SampleAspectRatio, dstFormat, plan, opts, metadata)
			if err != nil {
				return asUgoiraErr(err)
			}
			streamTB := encoder.StreamTimeBase()
			outputTB := astiav.NewRational(plan.TimeBase.Num, plan.TimeBase.Den)
			driver = avpipeline.NewDriver(streamTB, outputTB)
		}

		for _, pts := range driver.Emit(rec.DelayMs) {
			if err := encoder.EncodeFrame(scaled, pts); err != nil {
				encoder.Close()
				return asUgoiraErr(err)
			}
		}

		if logger != nil {
			logger.Debug(l10n.F("Encoded source frame %d/%d (%s)", i+1, len(frames), rec.File))
		}
	}

	if err := encoder.Close(); err != nil {
		return asUgoiraErr(err)
	}

	if logger != nil {
		logger.Info(l10n.T("Conversion completed"))
	}
	return nil
}

func asUgoiraErr(err error) *ugoiraerr.Error {
	if err == nil {
		return nil
	}
	if uerr, ok := err.(*ugoiraerr.Error); ok {
		return uerr
	}
	return ugoiraerr.New(ugoiraerr.OOM, err.Error())
}
