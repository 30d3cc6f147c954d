package simulator

import (
	"context"
	"errors"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bryanmalak/real-time-power-monitoring/internal/history"
	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
)

// TickSnapshot carries the readings produced by one tick so collaborators
// (metrics, the stream hub) can react without touching simulator state.
type TickSnapshot struct {
	Tick      uint64          `json:"tick"`
	Timestamp time.Time       `json:"timestamp"`
	Readings  []models.Sample `json:"readings"`
	SeriesLen int             `json:"series_len"`
}

// Config holds the simulator tunables.
type Config struct {
	// Interval between ticks. Defaults to one second.
	Interval time.Duration
	// Seed for the random source. Zero seeds from the wall clock, any
	// other value makes the generated series reproducible.
	Seed uint64
	// Profiles describes the simulated appliances. Defaults to
	// DefaultProfiles when empty.
	Profiles []Profile
}

// Simulator produces one synthetic power sample per device per tick and
// appends them to the history store. It is the only writer of the store.
type Simulator struct {
	cfg      Config
	profiles []Profile
	store    *history.Store

	mu     sync.Mutex
	rng    *rand.Rand
	active map[models.Device]bool
	ticks  uint64

	onTick func(TickSnapshot)
}

// New validates the configuration and prepares a simulator over the
// supplied store. The store must track exactly the profiled devices.
func New(cfg Config, store *history.Store) (*Simulator, error) {
	if store == nil {
		return nil, errors.New("store must not be nil")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = DefaultProfiles()
	}
	seen := make(map[models.Device]struct{}, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		if p.Device == "" {
			return nil, errors.New("profile device must not be empty")
		}
		if p.MaxWatts <= p.MinWatts || p.MinWatts < 0 {
			return nil, errors.New("profile watt bounds must satisfy 0 <= min < max")
		}
		if _, dup := seen[p.Device]; dup {
			return nil, errors.New("duplicate profile for device " + string(p.Device))
		}
		seen[p.Device] = struct{}{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Simulator{
		cfg:      cfg,
		profiles: cfg.Profiles,
		store:    store,
		rng:      rand.New(rand.NewPCG(seed, seed)),
		active:   make(map[models.Device]bool, len(cfg.Profiles)),
	}, nil
}

// SetTickCallback registers the function invoked after every tick with the
// freshly appended readings. Must be called before Run.
func (s *Simulator) SetTickCallback(fn func(TickSnapshot)) {
	s.onTick = fn
}

// Devices reports the simulated appliances with their configured bounds.
func (s *Simulator) Devices() []models.DeviceInfo {
	out := make([]models.DeviceInfo, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, models.DeviceInfo{
			Device:   p.Device,
			Label:    p.Device.Label(),
			MinWatts: p.MinWatts,
			MaxWatts: p.MaxWatts,
		})
	}
	return out
}

// Tick generates exactly one new sample per device at the supplied
// instant, appends each to the store, and returns the resulting snapshot.
// It cannot fail: there is no I/O and no external dependency involved.
func (s *Simulator) Tick(now time.Time) TickSnapshot {
	s.mu.Lock()
	readings := make([]models.Sample, 0, len(s.profiles))
	for _, p := range s.profiles {
		readings = append(readings, models.Sample{
			Timestamp: now,
			Device:    p.Device,
			Watts:     s.draw(p),
		})
	}
	s.ticks++
	tick := s.ticks
	s.mu.Unlock()

	for _, sample := range readings {
		s.store.Append(sample)
	}

	snap := TickSnapshot{
		Tick:      tick,
		Timestamp: now,
		Readings:  readings,
		SeriesLen: s.store.Len(),
	}
	if s.onTick != nil {
		s.onTick(snap)
	}
	return snap
}

// draw produces the next reading for one profile. Duty-cycled appliances
// toggle between their idle and active bands with the configured chance;
// everything else sweeps the full range uniformly. Callers hold s.mu.
func (s *Simulator) draw(p Profile) float64 {
	if !p.dutyCycled() {
		return round2(p.MinWatts + s.rng.Float64()*(p.MaxWatts-p.MinWatts))
	}

	if s.rng.Float64() < p.DutyChance {
		s.active[p.Device] = !s.active[p.Device]
	}

	lo, hi := p.MinWatts, p.IdleMaxWatts
	if s.active[p.Device] {
		lo, hi = p.ActiveMinWatts, p.MaxWatts
	}
	return round2(lo + s.rng.Float64()*(hi-lo))
}

// Run drives Tick on the configured interval until the context is
// cancelled. The loop never overlaps ticks: the generation for one tick
// completes before the next ticker fire is consumed.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	log.Printf("Simulator started: %d devices, tick every %s", len(s.profiles), s.cfg.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				s.Tick(now)
			case <-ctx.Done():
				log.Println("Simulator stopped")
				return
			}
		}
	}()
}

// Ticks returns the number of completed ticks.
func (s *Simulator) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
