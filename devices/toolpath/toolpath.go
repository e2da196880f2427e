// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package toolpath reads the `;`-and-`,` delimited tool-path text format:
// one logical path per line, `T;x0,y0,x1,y1,...\n`, T an integer tool
// number followed by an even count of decimal coordinates.
package toolpath

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/geom"
)

// Path is one parsed tool-path record.
type Path struct {
	Tool   int
	Points []geom.Point2D
}

// bufSize is the internal read chunk size. Lines longer than this are
// tolerated by concatenating chunks until a newline is observed, per
// spec.md §4.3; it does not bound the record length.
const bufSize = 4096

// Read parses every tool-path line from r in order. It reads in fixed-size
// chunks and concatenates them until a newline is seen before dispatching a
// complete record, so a line longer than bufSize is still parsed whole.
func Read(r io.Reader) ([]Path, error) {
	var paths []Path
	var pending strings.Builder
	chunk := make([]byte, bufSize)
	lineNo := 0

	dispatch := func(line string) error {
		line = strings.TrimRight(line, "\r\n")
		lineNo++
		if strings.TrimSpace(line) == "" {
			return nil
		}
		p, perr := parseLine(line)
		if perr != nil {
			return armerr.Wrap(armerr.MalformedPath, lineNo, perr.Error(), perr)
		}
		paths = append(paths, p)
		return nil
	}

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			pending.Write(chunk[:n])
			for {
				buf := pending.String()
				i := strings.IndexByte(buf, '\n')
				if i < 0 {
					break
				}
				if derr := dispatch(buf[:i+1]); derr != nil {
					return nil, derr
				}
				pending.Reset()
				pending.WriteString(buf[i+1:])
			}
		}
		if err == io.EOF {
			if pending.Len() > 0 {
				if derr := dispatch(pending.String()); derr != nil {
					return nil, derr
				}
			}
			return paths, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "toolpath: read")
		}
	}
}

func parseLine(line string) (Path, error) {
	semi := strings.IndexByte(line, ';')
	if semi < 0 {
		return Path{}, errors.New("missing ';' separating tool number from coordinates")
	}
	tool, err := strconv.Atoi(strings.TrimSpace(line[:semi]))
	if err != nil {
		return Path{}, errors.Wrapf(err, "invalid tool number %q", line[:semi])
	}
	rest := strings.TrimSpace(line[semi+1:])
	if rest == "" {
		return Path{}, errors.New("no coordinates")
	}
	fields := strings.Split(rest, ",")
	if len(fields)%2 != 0 {
		return Path{}, errors.Errorf("odd coordinate count: %d", len(fields))
	}
	points := make([]geom.Point2D, len(fields)/2)
	for i := range points {
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i]), 64)
		if err != nil {
			return Path{}, errors.Wrapf(err, "invalid x coordinate %q", fields[2*i])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i+1]), 64)
		if err != nil {
			return Path{}, errors.Wrapf(err, "invalid y coordinate %q", fields[2*i+1])
		}
		points[i] = geom.Point2D{X: x, Y: y}
	}
	if len(points) < 2 {
		return Path{}, errors.New("need at least two points")
	}
	return Path{Tool: tool, Points: points}, nil
}
