package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/leandrodaf/midibt/internal/config"
	"github.com/leandrodaf/midibt/internal/logger"
	"github.com/leandrodaf/midibt/sdk/contracts"
	"github.com/leandrodaf/midibt/sdk/midi"
)

// printer logs the events of the client.
type printer struct {
	contracts.BaseListener
	log contracts.Logger
}

func (p printer) OnDeviceListUpdated(devices []contracts.DeviceRecord) {
	fmt.Println("Available MIDI devices:", devices)
}

func (p printer) OnDeviceConnected(address string) {
	p.log.Info("Device connected", p.log.Field().String("address", address))
}

func (p printer) OnDeviceDisconnected(address string) {
	p.log.Info("Device disconnected", p.log.Field().String("address", address))
}

func (p printer) OnNoteOn(event contracts.MIDI) {
	p.log.Info("MIDI Event",
		p.log.Field().Uint64("Timestamp", event.Timestamp),
		p.log.Field().Int("Command", int(event.Command)),
		p.log.Field().Int("Note", int(event.Note)),
		p.log.Field().Int("Velocity", int(event.Velocity)),
	)
}

func (p printer) OnNoteOff(event contracts.MIDI) { p.OnNoteOn(event) }

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	deviceName := flag.String("open", "", "name of the device to open once found")
	flag.Parse()

	log := logger.NewZapLogger()

	cfg := config.Default()
	if _, err := os.Stat(*configPath); err == nil {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal("Failed to load config", log.Field().Error("error", err))
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", log.Field().Error("error", err))
	}

	client, err := midi.NewMIDIClient(append(cfg.Options(), contracts.WithLogger(log))...)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	client.Subscribe(printer{log: log})
	if err := client.Start(); err != nil {
		log.Error("Failed to start MIDI client", log.Field().Error("error", err))
		return
	}
	defer client.Stop()

	if err := client.ScanMidiBluetooth(); err != nil {
		log.Error("Failed to scan for MIDI devices", log.Field().Error("error", err))
		return
	}

	if *deviceName != "" {
		unsubscribe := client.Subscribe(opener{client: client, name: *deviceName, log: log})
		defer unsubscribe()
	}

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}

// opener opens the named device when a scan reports it.
type opener struct {
	contracts.BaseListener
	client contracts.ClientMIDI
	name   string
	log    contracts.Logger
}

func (o opener) OnScanCompleted() {
	if err := o.client.OpenPortByName(o.name); err != nil {
		o.log.Error("Failed to open device", o.log.Field().Error("error", err))
	}
}
