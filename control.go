package seismod

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// ServerStatus is what SourceControl reports to clients.
type ServerStatus struct {
	Running       bool
	SampleRateHz  float64
	RecordsSeen   uint64
	TriggerLevels TriggerLevels
}

// ClientUpdate is one item on the heartbeat/status broadcast channel.
type ClientUpdate struct {
	Tag   string
	State interface{}
}

// SourceControl is the JSON-RPC sub-server wrapping the running acquisition
// pipeline.
type SourceControl struct {
	source   *Source
	detector *TriggerDetector
	cancel   context.CancelFunc

	status        atomic.Value
	recordsSeen   uint64
	clientUpdates chan ClientUpdate
	eventFilename string
}

// NewSourceControl wraps source and detector for RPC control. eventFilename
// names the event file WriteComment appends a comment.txt beside.
func NewSourceControl(source *Source, detector *TriggerDetector, eventFilename string) *SourceControl {
	sc := &SourceControl{
		source:        source,
		detector:      detector,
		clientUpdates: make(chan ClientUpdate, 16),
		eventFilename: eventFilename,
	}
	sc.SetStatus(ServerStatus{})
	return sc
}

// Status atomically loads the current ServerStatus.
func (s *SourceControl) Status() ServerStatus {
	return s.status.Load().(ServerStatus)
}

// SetStatus atomically stores a new ServerStatus.
func (s *SourceControl) SetStatus(x ServerStatus) {
	s.status.Store(x)
}

// GetStatus is the RPC-callable read of the Status()/SetStatus() pair,
// exposed over net/rpc.
func (s *SourceControl) GetStatus(dummy *string, reply *ServerStatus) error {
	*reply = s.Status()
	return nil
}

// Start launches the serial source's read loop under a fresh cancellable
// context. Returns an error if a source is already running.
func (s *SourceControl) Start(dummy *string, reply *bool) error {
	if s.cancel != nil {
		return fmt.Errorf("source is already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	status := s.Status()
	status.Running = true
	s.SetStatus(status)

	go func() {
		if err := s.source.Run(ctx); err != nil {
			log.Printf("control: source stopped with error: %v", err)
		}
		status := s.Status()
		status.Running = false
		s.SetStatus(status)
	}()

	*reply = true
	return nil
}

// Stop cancels the running source's context.
func (s *SourceControl) Stop(dummy *string, reply *bool) error {
	if s.cancel == nil {
		return fmt.Errorf("no source is running")
	}
	s.cancel()
	s.cancel = nil

	status := s.Status()
	status.Running = false
	s.SetStatus(status)
	*reply = true
	return nil
}

// ConfigureTriggerLevels changes the live detector's per-axis thresholds
// without restarting the source.
func (s *SourceControl) ConfigureTriggerLevels(levels *TriggerLevels, reply *bool) error {
	s.detector.Reconfigure(*levels)

	status := s.Status()
	status.TriggerLevels = *levels
	s.SetStatus(status)

	s.clientUpdates <- ClientUpdate{Tag: "TRIGGERLEVELS", State: *levels}
	*reply = true
	return nil
}

// WriteComment appends comment to a comment.txt file alongside the current
// event file.
func (s *SourceControl) WriteComment(comment *string, reply *bool) error {
	*reply = true
	if len(*comment) == 0 {
		return nil
	}

	commentFilename := path.Join(filepath.Dir(s.eventFilename), "comment.txt")
	fp, err := os.OpenFile(commentFilename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer fp.Close()

	fp.WriteString(*comment)
	if !strings.HasSuffix(*comment, "\n") {
		fp.WriteString("\n")
	}
	return nil
}

// RecordObserved increments the record counter the heartbeat reports. The
// counter advances only through this method; nothing in this package or in
// cmd/seismod calls it.
func (s *SourceControl) RecordObserved() {
	atomic.AddUint64(&s.recordsSeen, 1)
}

func (s *SourceControl) broadcastHeartbeat(uptime time.Duration) {
	n := atomic.LoadUint64(&s.recordsSeen)
	status := s.Status()
	status.RecordsSeen = n
	s.SetStatus(status)
	s.clientUpdates <- ClientUpdate{Tag: "ALIVE", State: struct {
		Uptime      time.Duration
		RecordsSeen uint64
	}{uptime, n}}
}

// RunRPCServer sets up and runs the JSON-RPC control server. If block, it
// blocks until SIGINT and gracefully stops the running source first.
func RunRPCServer(sc *SourceControl, port int, block bool) {
	// Nothing drains clientUpdates over the network yet (no WebSocket/SSE
	// layer is in scope); log each update so the channel never backs up.
	go func() {
		for u := range sc.clientUpdates {
			log.Printf("control: broadcast %s: %+v", u.Tag, u.State)
		}
	}()

	start := time.Now()
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			sc.broadcastHeartbeat(time.Since(start))
		}
	}()

	go func() {
		server := rpc.NewServer()
		if err := server.Register(sc); err != nil {
			panic(err)
		}
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			panic(fmt.Sprint("listen error:", err))
		}
		for {
			conn, err := listener.Accept()
			if err != nil {
				log.Printf("control: accept error: %v", err)
				continue
			}
			log.Printf("control: new connection established")
			go func() {
				codec := jsonrpc.NewServerCodec(conn)
				for {
					if err := server.ServeRequest(codec); err != nil {
						log.Printf("control: connection closed: %v", err)
						return
					}
				}
			}()
		}
	}()

	if block {
		interruptCatcher := make(chan os.Signal, 1)
		signal.Notify(interruptCatcher, os.Interrupt)
		<-interruptCatcher
		var dummy string
		var ok bool
		sc.Stop(&dummy, &ok)
	}
}
