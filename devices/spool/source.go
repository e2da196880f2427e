// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spool

import "io"

// Source adapts a Reader to conn/link.FrameSource: frames are read strictly
// sequentially, exactly once per caller request, matching the sender's
// cursor-never-rewinds contract.
type Source struct {
	r *Reader
}

// NewSource wraps r as a FrameSource.
func NewSource(r *Reader) *Source {
	return &Source{r: r}
}

// Next implements conn/link.FrameSource.
func (s *Source) Next() ([]byte, bool, error) {
	buf, err := s.r.Next()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return buf, true, nil
}
