package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/geobridge/geobridge-go/pkg/backend/memory"
	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/metrics"
	"github.com/geobridge/geobridge-go/pkg/subscription"
	"github.com/geobridge/geobridge-go/pkg/wire"
)

// DefaultBuffer is the consumer buffer size.
const DefaultBuffer = 256

// Simulator drives a bridge over the memory backend from a scenario.
type Simulator struct {
	scenario *Scenario
	opener   *memory.Opener
	bridge   *subscription.Bridge
	consumer *subscription.ChannelConsumer
	writer   *wire.RecordWriter
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.BridgeCollector

	written atomic.Int64
	errors  atomic.Int64
}

// SimulatorConfig holds the collaborators of a Simulator.
type SimulatorConfig struct {
	Writer  *wire.RecordWriter
	Clock   clock.Clock
	Logger  *slog.Logger
	Metrics *metrics.BridgeCollector
	Buffer  int

	// BridgeOptions are passed to the bridge after the simulator's own.
	BridgeOptions []subscription.Option
}

// NewSimulator creates a simulator for scenario.
func NewSimulator(scenario *Scenario, cfg SimulatorConfig) *Simulator {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}

	opener := memory.NewOpener(memory.WithLogger(cfg.Logger))
	opts := []subscription.Option{
		subscription.WithLogger(cfg.Logger),
		subscription.WithClock(cfg.Clock),
		subscription.WithMetrics(cfg.Metrics),
	}
	opts = append(opts, cfg.BridgeOptions...)

	s := &Simulator{
		scenario: scenario,
		opener:   opener,
		bridge:   subscription.NewBridge(opener, opts...),
		consumer: subscription.NewChannelConsumer(cfg.Buffer),
		writer:   cfg.Writer,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
	s.consumer.OnDrop(func(env envelope.Envelope) {
		s.metrics.EnvelopeDropped(subscription.KindOf(env.Type()).String(), metrics.ReasonBufferFull)
	})
	return s
}

// Bridge returns the simulated bridge.
func (s *Simulator) Bridge() *subscription.Bridge { return s.bridge }

// Written returns the number of records written so far.
func (s *Simulator) Written() int64 { return s.written.Load() }

// StreamErrors returns the number of error signals received so far.
func (s *Simulator) StreamErrors() int64 { return s.errors.Load() }

// Setup starts the bridge session and attaches the scenario listeners.
func (s *Simulator) Setup() error {
	if err := s.bridge.Start(s.scenario.Path); err != nil {
		return fmt.Errorf("start bridge: %w", err)
	}
	s.bridge.Listen(s.consumer)

	for _, p := range s.scenario.Points {
		if p.Data == nil {
			continue
		}
		s.opener.Store(s.scenario.Path).SetData(context.Background(), p.Key, p.Data, nil)
	}

	return s.query(s.scenario.Region)
}

func (s *Simulator) query(r Region) error {
	for _, kind := range s.scenario.Listeners {
		if err := s.bridge.QueryRegion(r.Center.Lat, r.Center.Lng, r.Radius, kind); err != nil {
			return fmt.Errorf("query %s listener: %w", kind, err)
		}
	}
	return nil
}

// Run executes Setup, every tick and the settle period, then closes the
// bridge. The stream is drained concurrently into the record writer.
func (s *Simulator) Run(ctx context.Context) error {
	if err := s.Setup(); err != nil {
		return err
	}
	defer s.opener.Close()
	defer s.bridge.Close()

	g, ctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})

	g.Go(func() error {
		return s.drain(ctx, finished)
	})

	g.Go(func() error {
		defer close(finished)

		ticker := s.clock.Ticker(s.scenario.Tick)
		defer ticker.Stop()

		for tick := 1; tick <= s.scenario.Ticks; tick++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
			if err := s.Step(ctx, tick); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.scenario.Settle):
		}
		return s.bridge.Close()
	})

	return g.Wait()
}

// Step applies point movements and scripted actions for tick.
func (s *Simulator) Step(ctx context.Context, tick int) error {
	s.logger.Debug("simulation tick", "tick", tick)

	for _, p := range s.scenario.Points {
		if tick > len(p.Waypoints) {
			continue
		}
		w := p.Waypoints[tick-1]
		err := await(func(done func(error)) error {
			return s.bridge.SetLocation(ctx, p.Key, w.Lat, w.Lng, done)
		})
		if err != nil {
			return fmt.Errorf("tick %d: move %s: %w", tick, p.Key, err)
		}
	}

	for _, st := range s.scenario.Steps {
		if st.At != tick {
			continue
		}
		if err := s.apply(ctx, st); err != nil {
			return fmt.Errorf("tick %d: %s: %w", tick, st.Action, err)
		}
	}
	return nil
}

func (s *Simulator) apply(ctx context.Context, st Step) error {
	switch st.Action {
	case ActionRelocate:
		return s.query(*st.Region)

	case ActionRemove:
		return await(func(done func(error)) error {
			return s.bridge.RemoveLocation(ctx, st.Key, done)
		})

	case ActionData:
		done := make(chan struct{})
		s.opener.Store(s.scenario.Path).SetData(ctx, st.Key, st.Data, func(error) { close(done) })
		<-done
		return nil

	case ActionDetach:
		return s.bridge.DetachListener(*st.Kind)

	case ActionGet:
		res := make(chan map[string]any, 1)
		err := s.bridge.GetLocation(ctx, st.Key, func(loc envelope.Location, err error) {
			res <- subscription.LocationResult(loc, err)
		})
		if err != nil {
			return err
		}
		s.logger.Info("location", "key", st.Key, "result", <-res)
		return nil

	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// drain copies the stream into the writer until finished is closed, then
// flushes what is still buffered.
func (s *Simulator) drain(ctx context.Context, finished <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-finished:
			return s.flush()
		case env := <-s.consumer.Events():
			if err := s.write(env); err != nil {
				return err
			}
		case se := <-s.consumer.Errors():
			s.streamError(se)
		}
	}
}

func (s *Simulator) flush() error {
	for {
		select {
		case env := <-s.consumer.Events():
			if err := s.write(env); err != nil {
				return err
			}
		case se := <-s.consumer.Errors():
			s.streamError(se)
		default:
			return nil
		}
	}
}

func (s *Simulator) write(env envelope.Envelope) error {
	if s.writer != nil {
		if err := s.writer.Write(env); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	s.written.Add(1)
	return nil
}

func (s *Simulator) streamError(se subscription.StreamError) {
	s.errors.Add(1)
	s.logger.Warn("stream error", "code", se.Code, "message", se.Message)
}

// await calls start with a completion callback and blocks until it fires.
// A synchronous error from start is returned without waiting.
func await(start func(done func(error)) error) error {
	ch := make(chan error, 1)
	if err := start(func(err error) { ch <- err }); err != nil {
		return err
	}
	return <-ch
}
