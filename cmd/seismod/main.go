// Command seismod runs the seismic acquisition pipeline: it reads line-framed
// records from a serial port, detects triggers per-axis, records
// pre/post-trigger events to disk, and optionally reports statistics,
// running RMS, raw samples, and live telemetry — all wired off a single
// fan-out, each as its own worker goroutine, until SIGINT.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"

	seismod "github.com/greenfield-seismic/seismod"
)

func main() {
	configName := flag.String("config", "seismod", "config file name (without extension)")
	statsFlag := flag.Bool("statistics", false, "enable the statistics reporter")
	flag.Parse()

	cfg, err := seismod.LoadConfig(*configName)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	port, err := seismod.OpenSerialPort(cfg.Port, 500000)
	if err != nil {
		log.Fatalf("opening serial port: %v", err)
	}
	defer port.Close()

	fanout := seismod.NewFanout()
	src := seismod.NewSource(port, fanout)

	tc := cfg.EventRecorder.TriggerConfig
	levels := seismod.TriggerLevels{X: tc.XTriggerLevel, Y: tc.YTriggerLevel, Z: tc.ZTriggerLevel}
	detector := seismod.NewTriggerDetector(tc.SampleRateHz, tc.FilterCutoffFrequency, tc.DeltaWindow, levels)

	if tc.DebugFilename != "" {
		f, err := os.OpenFile(tc.DebugFilename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("opening debug file: %v", err)
		}
		defer f.Close()
		detector.SetDebugSink(f)
	}

	eventWriter, err := seismod.NewFileRecordWriter(cfg.EventRecorder.Filename)
	if err != nil {
		log.Fatalf("opening event file: %v", err)
	}
	defer eventWriter.Close()

	recorder := seismod.NewEventRecorder(detector, eventWriter, cfg.EventRecorder.PreTriggerTimeMs, cfg.EventRecorder.PostTriggerTimeMs)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	runWorker := func(h seismod.RecordHandler) {
		ch := fanout.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			seismod.RunHandler(ctx, h, ch)
		}()
	}

	runWorker(recorder)

	if (*statsFlag || cfg.Statistics.Enabled) && cfg.Statistics.ReportIntervalMs > 0 {
		sampleCount := int(float64(cfg.Statistics.ReportIntervalMs) * tc.SampleRateHz / 1000)
		if sampleCount > 0 {
			runWorker(seismod.NewStatisticsReporter(sampleCount))
		}
	}

	if cfg.RMS.Enabled {
		rmsRecorder, err := seismod.NewRMSRecorder(cfg.RMS.Filename, cfg.RMS.WindowSize)
		if err != nil {
			log.Fatalf("opening rms file: %v", err)
		}
		defer rmsRecorder.Close()
		runWorker(rmsRecorder)
	}

	if cfg.RawDataRecorder.Enabled {
		rawWriter, err := seismod.NewFileRecordWriter(cfg.RawDataRecorder.Filename)
		if err != nil {
			log.Fatalf("opening raw file: %v", err)
		}
		defer rawWriter.Close()
		runWorker(seismod.NewRawWriter(rawWriter))
	}

	var telemetry *seismod.TelemetryPublisher
	if cfg.TelemetryEnabled {
		telemetry = seismod.NewTelemetryPublisher(cfg.TelemetryPort)
		defer telemetry.Close()
		runWorker(seismod.NewRawWriter(telemetry))
	}

	control := seismod.NewSourceControl(src, detector, cfg.EventRecorder.Filename)
	go seismod.RunRPCServer(control, cfg.RPCPort, false)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := src.Run(ctx); err != nil {
			log.Printf("source stopped: %v", err)
		}
		fanout.Close()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	log.Println("seismod: shutting down")
	cancel()
	wg.Wait()
}
