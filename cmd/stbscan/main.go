// Command stbscan is the companion receiver: it scans for beacon
// advertisements carrying the temperature schema UUID and prints the
// decoded readings.
//
// Usage example: stbscan -macs allowed.txt -time 30
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"tinygo.org/x/bluetooth"

	"github.com/sensor-beacon/stb/internal/advert"
)

func main() {
	var (
		macsPath = flag.String("macs", "", "file with allowed MAC addresses, one per line (optional)")
		scanTime = flag.Int("time", 0, "scan duration in seconds (0 = run until interrupted)")
		level    = flag.String("level", "info", "log level")
	)
	flag.Parse()

	if lvl, err := log.ParseLevel(*level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Fatal("failed to parse log level", "level", *level, "err", err)
	}

	// nil filter means inactive; an empty set still filters.
	var macFilter map[string]bool
	if *macsPath != "" {
		var err error
		macFilter, err = loadMACList(*macsPath)
		if err != nil {
			log.Fatal("failed to load MAC list", "path", *macsPath, "err", err)
		}
		log.Info("MAC filter active", "entries", len(macFilter))
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		log.Fatal("bluetooth init failed", "err", err)
	}

	target := bluetooth.NewUUID(advert.ServiceUUID)
	log.Info("scanning", "uuid", advert.ServiceUUIDString)

	if *scanTime > 0 {
		time.AfterFunc(time.Duration(*scanTime)*time.Second, func() {
			if err := adapter.StopScan(); err != nil {
				log.Error("failed to stop scan", "err", err)
			}
		})
	}

	err := adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
		addr := strings.ToUpper(result.Address.String())
		if macFilter != nil && !macFilter[addr] {
			return
		}
		for _, sd := range result.AdvertisementPayload.ServiceData() {
			if sd.UUID != target {
				continue
			}
			printReading(addr, result, sd.Data)
		}
	})
	if err != nil {
		log.Fatal("scan failed", "err", err)
	}
	log.Info("scan finished")
}

func printReading(addr string, result bluetooth.ScanResult, payload []byte) {
	recordType, centi, err := advert.DecodeServicePayload(payload)
	if err != nil {
		log.Debug("undecodable service data", "addr", addr, "err", err)
		return
	}

	name := result.LocalName()
	if name == "" {
		name = "unknown"
	}

	switch recordType {
	case advert.RecordTypeTemperature:
		fmt.Printf("%s  RSSI %4d dBm  Temp %6.2f C  Name: %s\n",
			addr, result.RSSI, advert.Degrees(centi), name)
	case 0:
		// Value not yet sampled; stay quiet.
	default:
		fmt.Printf("%s  RSSI %4d dBm  unknown record type %#02x  Name: %s\n",
			addr, result.RSSI, recordType, name)
	}
}

// loadMACList reads allowed MACs from path, one per line, upper-cased.
func loadMACList(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	macs := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			macs[strings.ToUpper(line)] = true
		}
	}
	return macs, scanner.Err()
}
