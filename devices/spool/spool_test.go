// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spool

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/drawbot/armctl/conn/frame"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spool.bin")
	w, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []frame.MotionFrame{
		{Theta1: 1, Theta2: 2, D3: 3},
		{Theta1: -1, Theta2: -2, D3: -3},
	}
	for _, f := range want {
		if err := w.Append(frame.PackMotion(f)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	n, err := r.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(want) {
		t.Fatalf("want %d frames, got %d", len(want), n)
	}
	for i, wantF := range want {
		buf, err := r.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		got, err := frame.UnpackMotion(buf)
		if err != nil {
			t.Fatalf("frame %d unpack: %v", i, err)
		}
		if got != wantF {
			t.Errorf("frame %d: want %+v got %+v", i, wantF, got)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("want io.EOF after last frame, got %v", err)
	}
}
