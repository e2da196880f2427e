// Copyright 2016 The PIO Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// plan reads a tool-path text file, runs it through the motion pipeline
// (spline build, arc-length sampling, IK, Z-plane compensation,
// quantization, frame encoding) and writes the resulting V02 frames to a
// spool file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/conn/frame"
	"github.com/drawbot/armctl/devices/arm"
	"github.com/drawbot/armctl/devices/spline"
	"github.com/drawbot/armctl/devices/spool"
	"github.com/drawbot/armctl/devices/toolpath"
)

func mainImpl() error {
	increment := flag.Float64("increment", 0.05, "nominal sample spacing in inches")
	bl := flag.Float64("bl", 0, "Z-plane bottom-left calibration depth")
	br := flag.Float64("br", 0, "Z-plane bottom-right calibration depth")
	tl := flag.Float64("tl", 0, "Z-plane top-left calibration depth")
	tr := flag.Float64("tr", 0, "Z-plane top-right calibration depth")
	workspaceLength := flag.Float64("workspace-length", 17, "workspace x extent in inches")
	workspaceWidth := flag.Float64("workspace-width", 15, "workspace y extent in inches")
	zDraw := flag.Float64("z-draw", 0, "drawing-depth actuator baseline")
	zRetract := flag.Float64("z-retract", -500, "pen-up retract actuator depth")
	penGap := flag.Float64("pen-gap-threshold", arm.DefaultTransitThreshold, "straight-line gap in inches above which a pen-up transit is inserted between tool-paths")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 2 {
		return errors.New("usage: plan <curves.txt> <spool.bin>")
	}
	curvesPath, spoolPath := flag.Arg(0), flag.Arg(1)

	in, err := os.Open(curvesPath)
	if err != nil {
		return armerr.Wrap(armerr.FileIO, -1, "open tool-path file", err)
	}
	defer in.Close()

	paths, err := toolpath.Read(in)
	if err != nil {
		return err
	}
	log.Printf("parsed %d tool-path(s)", len(paths))

	cal := arm.Calibration{
		BL: *bl, BR: *br, TL: *tl, TR: *tr,
		WorkspaceLength: *workspaceLength,
		WorkspaceWidth:  *workspaceWidth,
		ZDraw:           *zDraw,
		ZRetract:        *zRetract,
	}
	planner := arm.NewPlanner(cal)
	planner.SetTransitThreshold(*penGap)

	w, err := spool.Create(spoolPath)
	if err != nil {
		return err
	}
	defer w.Close()

	frameCount := 0
	for _, path := range paths {
		ev := spline.Build(path.Points)
		waypoints := spline.Sample(ev, *increment)
		samples, err := planner.PlanPath(waypoints)
		if err != nil {
			return err
		}
		for _, sample := range samples {
			buf := frame.PackMotion(frame.MotionFrame{Theta1: sample.Theta1, Theta2: sample.Theta2, D3: sample.D3})
			if err := frame.SelfCheck(buf); err != nil {
				return err
			}
			if err := w.Append(buf); err != nil {
				return err
			}
			frameCount++
		}
	}
	log.Printf("wrote %d frame(s) to %s", frameCount, spoolPath)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "plan: %s.\n", err)
		os.Exit(1)
	}
}
