// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package spool reads and writes the on-disk frame spool: a flat
// concatenation of V02 frames with no header, footer, or separator. Frame
// count is implied by file size divided by 12, per spec.md §4.7.
package spool

import (
	"io"
	"os"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/conn/frame"
)

// Writer appends V02 frame buffers to a spool file, strictly sequentially.
type Writer struct {
	f *os.File
}

// Create opens path for writing, truncating any existing spool.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, armerr.Wrap(armerr.FileIO, -1, "create spool", err)
	}
	return &Writer{f: f}, nil
}

// Append writes one packed V02 frame buffer to the spool.
func (w *Writer) Append(buf []byte) error {
	if len(buf) != frame.V02.Size() {
		return armerr.New(armerr.FileIO, "spool frame has wrong size")
	}
	if _, err := w.f.Write(buf); err != nil {
		return armerr.Wrap(armerr.FileIO, -1, "write spool frame", err)
	}
	return nil
}

// Close flushes and closes the spool file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Reader reads V02 frames strictly sequentially from a spool file.
type Reader struct {
	f *os.File
}

// Open opens path for sequential reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, armerr.Wrap(armerr.FileIO, -1, "open spool", err)
	}
	return &Reader{f: f}, nil
}

// Count returns the number of frames in the spool, computed from file size.
func (r *Reader) Count() (int, error) {
	info, err := r.f.Stat()
	if err != nil {
		return 0, armerr.Wrap(armerr.FileIO, -1, "stat spool", err)
	}
	size := info.Size()
	n := frame.V02.Size()
	if size%int64(n) != 0 {
		return 0, armerr.New(armerr.FileIO, "spool file size is not a multiple of the frame size")
	}
	return int(size / int64(n)), nil
}

// Next reads the next frame buffer, or io.EOF when the spool is exhausted.
func (r *Reader) Next() ([]byte, error) {
	buf := make([]byte, frame.V02.Size())
	if _, err := io.ReadFull(r.f, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, armerr.Wrap(armerr.FileIO, -1, "read spool frame", err)
	}
	return buf, nil
}

// Close closes the spool file.
func (r *Reader) Close() error {
	return r.f.Close()
}
