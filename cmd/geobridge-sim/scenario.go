package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/subscription"
)

// DefaultTick is the simulation step interval when the scenario sets none.
const DefaultTick = time.Second

// Step actions.
const (
	ActionRelocate = "relocate"
	ActionRemove   = "remove"
	ActionData     = "data"
	ActionDetach   = "detach"
	ActionGet      = "get"
)

// Scenario describes a simulation run.
type Scenario struct {
	// Path is the backend path scope.
	Path string `yaml:"path"`

	// Tick is the interval between simulation steps.
	Tick time.Duration `yaml:"tick"`

	// Ticks is the number of steps to run. Zero derives it from the
	// longest waypoint list and the last step.
	Ticks int `yaml:"ticks"`

	// Settle is how long to keep draining after the last step.
	// Zero waits one tick.
	Settle time.Duration `yaml:"settle"`

	Region    Region              `yaml:"region"`
	Listeners []subscription.Kind `yaml:"listeners"`
	Points    []Point             `yaml:"points"`
	Steps     []Step              `yaml:"steps"`
}

// Coordinate is a YAML-friendly location.
type Coordinate struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// Location converts c.
func (c Coordinate) Location() envelope.Location {
	return envelope.Location{Latitude: c.Lat, Longitude: c.Lng}
}

// Region is a circular query area.
type Region struct {
	Center Coordinate `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

// Point is a simulated moving point. At tick n it moves to Waypoints[n-1];
// after the last waypoint it stays put.
type Point struct {
	Key       string         `yaml:"key"`
	Data      map[string]any `yaml:"data"`
	Waypoints []Coordinate   `yaml:"waypoints"`
}

// Step is a scripted action applied at a tick.
type Step struct {
	At     int                `yaml:"at"`
	Action string             `yaml:"action"`
	Key    string             `yaml:"key"`
	Kind   *subscription.Kind `yaml:"kind"`
	Region *Region            `yaml:"region"`
	Data   map[string]any     `yaml:"data"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Tick == 0 {
		s.Tick = DefaultTick
	}
	if s.Settle == 0 {
		s.Settle = s.Tick
	}
	if len(s.Listeners) == 0 {
		s.Listeners = []subscription.Kind{subscription.KindKeyEvents}
	}
	if s.Ticks == 0 {
		for _, p := range s.Points {
			s.Ticks = max(s.Ticks, len(p.Waypoints))
		}
		for _, st := range s.Steps {
			s.Ticks = max(s.Ticks, st.At)
		}
	}
}

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Validate checks the scenario for structural errors.
func (s *Scenario) Validate() error {
	if s.Path == "" {
		return invalid("path is required")
	}
	if s.Tick < 0 || s.Settle < 0 {
		return invalid("tick and settle must not be negative")
	}
	if s.Ticks <= 0 {
		return invalid("nothing to simulate: no waypoints, steps or ticks")
	}
	if err := s.Region.validate(); err != nil {
		return err
	}

	seen := make(map[subscription.Kind]bool)
	for _, k := range s.Listeners {
		if !k.Valid() {
			return invalid("unknown listener kind %d", k)
		}
		if seen[k] {
			return invalid("listener kind %s listed twice", k)
		}
		seen[k] = true
	}

	keys := make(map[string]bool)
	for i, p := range s.Points {
		if p.Key == "" {
			return invalid("point %d has no key", i)
		}
		if keys[p.Key] {
			return invalid("duplicate point key %q", p.Key)
		}
		keys[p.Key] = true
		for j, w := range p.Waypoints {
			if !w.Location().Valid() {
				return invalid("point %q waypoint %d out of range", p.Key, j)
			}
		}
	}

	for i, st := range s.Steps {
		if st.At < 1 || st.At > s.Ticks {
			return invalid("step %d: at %d outside 1..%d", i, st.At, s.Ticks)
		}
		switch st.Action {
		case ActionRelocate:
			if st.Region == nil {
				return invalid("step %d: relocate needs a region", i)
			}
			if err := st.Region.validate(); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case ActionRemove, ActionData, ActionGet:
			if st.Key == "" {
				return invalid("step %d: %s needs a key", i, st.Action)
			}
		case ActionDetach:
			if st.Kind == nil {
				return invalid("step %d: detach needs a kind", i)
			}
			if !st.Kind.Valid() {
				return invalid("step %d: unknown kind", i)
			}
		default:
			return invalid("step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}

func (r Region) validate() error {
	if !r.Center.Location().Valid() {
		return invalid("region center %s out of range", r.Center.Location())
	}
	if r.Radius < 0 {
		return invalid("region radius %g is negative", r.Radius)
	}
	return nil
}
