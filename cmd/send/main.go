// Copyright 2016 The PIO Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// send streams a frame spool to the serial link using the stop-and-wait
// sender, reporting status and motor-fault notifications to a Notifier.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/drawbot/armctl/conn/link"
	"github.com/drawbot/armctl/devices/spool"
	"github.com/drawbot/armctl/host/serialport"
	"github.com/drawbot/armctl/notify"
)

func mainImpl() error {
	device := flag.String("port", serialport.DefaultDevice, "serial device path")
	baud := flag.Int("baud", serialport.DefaultBaud, "serial baud rate")
	timeout := flag.Duration("timeout", link.ResendTimeout, "resend timeout before retransmitting an unacknowledged frame")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("usage: send <spool.bin>")
	}
	spoolPath := flag.Arg(0)

	reader, err := spool.Open(spoolPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	count, err := reader.Count()
	if err != nil {
		return err
	}
	log.Printf("spool has %d frame(s)", count)

	port, err := serialport.Open(*device, *baud)
	if err != nil {
		return err
	}
	defer port.Close()

	sender := link.NewSender(port, spool.NewSource(reader), notify.Logger{})
	sender.SetResendTimeout(*timeout)
	return sender.Run(time.Now)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "send: %s.\n", err)
		os.Exit(1)
	}
}
