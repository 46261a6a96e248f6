// cvmon tails the telemetry tuples the Workshop Computer demo firmware
// prints over USB serial, timestamping each line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tarm/serial"
)

func main() {
	var (
		device = flag.String("device", "/dev/ttyACM0", "serial device")
		baud   = flag.Int("baud", 115200, "baud rate (USB CDC ignores this)")
	)
	flag.Parse()

	port, err := serial.OpenPort(&serial.Config{
		Name: *device,
		Baud: *baud,
	})
	if err != nil {
		log.Fatalf("failed to open serial port %s: %v", *device, err)
	}
	defer port.Close()

	log.Printf("listening on %s", *device)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read: %v", err)
	}
}
