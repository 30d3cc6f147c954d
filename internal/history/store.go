package history

import (
	"sync"

	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
)

// Store buffers the per-device sample series rendered by the dashboard.
// It keeps at most maxSamples readings per device, evicting the oldest
// reading once the window is full. It is safe for concurrent use: the
// simulator is the only writer, HTTP handlers and the stream hub read
// defensive snapshot copies.
type Store struct {
	mu         sync.RWMutex
	maxSamples int
	series     map[models.Device][]models.Sample
	order      []models.Device
}

// DefaultMaxSamples matches the rolling window used by the chart when no
// explicit capacity is configured.
const DefaultMaxSamples = 100

// NewStore creates empty series for the supplied devices. Capacities of
// zero or below fall back to DefaultMaxSamples.
func NewStore(devices []models.Device, maxSamples int) *Store {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	s := &Store{
		maxSamples: maxSamples,
		series:     make(map[models.Device][]models.Sample, len(devices)),
		order:      make([]models.Device, 0, len(devices)),
	}
	for _, d := range devices {
		if _, exists := s.series[d]; exists {
			continue
		}
		s.series[d] = make([]models.Sample, 0, maxSamples)
		s.order = append(s.order, d)
	}
	return s
}

// Append adds one sample to its device's series, evicting the oldest
// sample when the rolling window is full. It reports whether an eviction
// occurred. Samples for unknown devices are ignored.
func (s *Store) Append(sample models.Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.series[sample.Device]
	if !ok {
		return false
	}
	if len(buf) >= s.maxSamples {
		buf = append(buf[1:], sample)
		s.series[sample.Device] = buf
		return true
	}
	s.series[sample.Device] = append(buf, sample)
	return false
}

// Devices returns the tracked devices in their fixed display order.
func (s *Store) Devices() []models.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Device, len(s.order))
	copy(out, s.order)
	return out
}

// Series returns a copy of the buffered samples for one device.
func (s *Store) Series(device models.Device) []models.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buf := s.series[device]
	if len(buf) == 0 {
		return nil
	}
	out := make([]models.Sample, len(buf))
	copy(out, buf)
	return out
}

// Snapshot clones every buffered series keyed by device. Callers receive
// copies that are safe to mutate.
func (s *Store) Snapshot() map[models.Device][]models.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.Device][]models.Sample, len(s.series))
	for device, buf := range s.series {
		copied := make([]models.Sample, len(buf))
		copy(copied, buf)
		out[device] = copied
	}
	return out
}

// Latest returns the most recent sample per device. Devices that have not
// produced a sample yet are omitted.
func (s *Store) Latest() map[models.Device]models.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.Device]models.Sample, len(s.series))
	for device, buf := range s.series {
		if len(buf) == 0 {
			continue
		}
		out[device] = buf[len(buf)-1]
	}
	return out
}

// Len returns the current series length. Every device's series grows in
// lockstep (one sample per tick), so the shortest series is authoritative.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := -1
	for _, buf := range s.series {
		if n == -1 || len(buf) < n {
			n = len(buf)
		}
	}
	if n == -1 {
		return 0
	}
	return n
}

// MaxSamples exposes the configured rolling window capacity.
func (s *Store) MaxSamples() int {
	return s.maxSamples
}
