// Package frame holds the ordered list of still-image records that make
// up one ugoira animation.
package frame

import "github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"

// Record is one entry of an ugoira manifest: the name of a ZIP entry and
// the number of milliseconds it should be displayed for.
type Record struct {
	File    string
	DelayMs float64
}

// List is the ordered, owned sequence of Records describing an
// animation. The zero value is a valid, empty list.
type List []Record

// Append validates and appends a record, returning the new list. It
// rejects an empty file name or a non-positive delay.
func (l List) Append(file string, delayMs float64) (List, error) {
	if file == "" {
		return l, ugoiraerr.New(ugoiraerr.InvalidFrames, "file name must not be empty")
	}
	if delayMs <= 0 {
		return l, ugoiraerr.New(ugoiraerr.InvalidFrames, "delay_ms must be strictly positive")
	}
	return append(l, Record{File: file, DelayMs: delayMs}), nil
}

// Validate checks that every record in the list satisfies the frame
// invariants and that the list itself is non-empty.
func (l List) Validate() error {
	if len(l) == 0 {
		return ugoiraerr.New(ugoiraerr.InvalidFrames, "frame list must not be empty")
	}
	for i, r := range l {
		if r.File == "" {
			return ugoiraerr.Newf(ugoiraerr.InvalidFrames, "frame %d has an empty file name", i)
		}
		if r.DelayMs <= 0 {
			return ugoiraerr.Newf(ugoiraerr.InvalidFrames, "frame %d has a non-positive delay", i)
		}
	}
	return nil
}
