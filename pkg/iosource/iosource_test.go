package iosource

import (
	"bytes"
	"io"
	"testing"
)

func TestReadPassesThroughBytes(t *testing.T) {
	src := New(bytes.NewReader([]byte("hello world")))
	buf := make([]byte, 5)
	n, err := src.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 || string(buf) != "hello" {
		t.Fatalf("got n=%d buf=%q", n, buf)
	}
}

func TestReadSignalsEOF(t *testing.T) {
	src := New(bytes.NewReader(nil))
	buf := make([]byte, 5)
	_, err := src.Read(buf)
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
