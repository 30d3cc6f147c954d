package simulator

import (
	"testing"
	"time"

	"github.com/bryanmalak/real-time-power-monitoring/internal/history"
	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
)

func newTestSimulator(t *testing.T, seed uint64, maxSamples int) (*Simulator, *history.Store) {
	t.Helper()
	store := history.NewStore(models.AllDevices(), maxSamples)
	sim, err := New(Config{Interval: time.Second, Seed: seed}, store)
	if err != nil {
		t.Fatalf("simulator init failed: %v", err)
	}
	return sim, store
}

func TestTickAppendsOneSamplePerDevice(t *testing.T) {
	sim, store := newTestSimulator(t, 1, 100)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	snap := sim.Tick(now)

	if len(snap.Readings) != len(models.AllDevices()) {
		t.Fatalf("expected %d readings, got %d", len(models.AllDevices()), len(snap.Readings))
	}
	for _, device := range models.AllDevices() {
		series := store.Series(device)
		if len(series) != 1 {
			t.Fatalf("expected series length 1 for %s, got %d", device, len(series))
		}
		if series[0].Timestamp != now {
			t.Fatalf("expected timestamp %v for %s, got %v", now, device, series[0].Timestamp)
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected common series length 1, got %d", store.Len())
	}
}

func TestSeriesGrowInLockstep(t *testing.T) {
	sim, store := newTestSimulator(t, 7, 200)
	now := time.Now()

	for i := 0; i < 100; i++ {
		sim.Tick(now.Add(time.Duration(i) * time.Second))
		want := i + 1
		for _, device := range models.AllDevices() {
			if got := len(store.Series(device)); got != want {
				t.Fatalf("after tick %d expected length %d for %s, got %d", i+1, want, device, got)
			}
		}
	}
}

func TestValuesStayWithinProfileBounds(t *testing.T) {
	sim, store := newTestSimulator(t, 42, 200)
	now := time.Now()

	for i := 0; i < 100; i++ {
		sim.Tick(now.Add(time.Duration(i) * time.Second))
	}

	bounds := make(map[models.Device]Profile)
	for _, p := range DefaultProfiles() {
		bounds[p.Device] = p
	}
	for _, device := range models.AllDevices() {
		p := bounds[device]
		for _, sample := range store.Series(device) {
			if sample.Watts < p.MinWatts || sample.Watts > p.MaxWatts {
				t.Fatalf("%s reading %.2f outside [%.2f, %.2f]", device, sample.Watts, p.MinWatts, p.MaxWatts)
			}
		}
	}
}

func TestSameSeedProducesIdenticalSeries(t *testing.T) {
	simA, storeA := newTestSimulator(t, 99, 200)
	simB, storeB := newTestSimulator(t, 99, 200)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		at := now.Add(time.Duration(i) * time.Second)
		simA.Tick(at)
		simB.Tick(at)
	}

	for _, device := range models.AllDevices() {
		a := storeA.Series(device)
		b := storeB.Series(device)
		if len(a) != len(b) {
			t.Fatalf("series length mismatch for %s: %d vs %d", device, len(a), len(b))
		}
		for i := range a {
			if a[i].Watts != b[i].Watts {
				t.Fatalf("seeded runs diverged for %s at index %d: %.2f vs %.2f", device, i, a[i].Watts, b[i].Watts)
			}
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	simA, storeA := newTestSimulator(t, 1, 200)
	simB, storeB := newTestSimulator(t, 2, 200)
	now := time.Now()

	for i := 0; i < 20; i++ {
		at := now.Add(time.Duration(i) * time.Second)
		simA.Tick(at)
		simB.Tick(at)
	}

	same := true
	for _, device := range models.AllDevices() {
		a := storeA.Series(device)
		b := storeB.Series(device)
		for i := range a {
			if a[i].Watts != b[i].Watts {
				same = false
			}
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different series")
	}
}

func TestTickCallbackReceivesReadings(t *testing.T) {
	sim, _ := newTestSimulator(t, 5, 100)

	var got TickSnapshot
	sim.SetTickCallback(func(snap TickSnapshot) { got = snap })

	now := time.Now()
	sim.Tick(now)

	if got.Tick != 1 {
		t.Fatalf("expected tick counter 1, got %d", got.Tick)
	}
	if len(got.Readings) != len(models.AllDevices()) {
		t.Fatalf("expected %d readings in callback, got %d", len(models.AllDevices()), len(got.Readings))
	}
	if got.SeriesLen != 1 {
		t.Fatalf("expected series length 1 in callback, got %d", got.SeriesLen)
	}
}

func TestDevicesReportConfiguredBounds(t *testing.T) {
	sim, _ := newTestSimulator(t, 5, 100)

	infos := sim.Devices()
	if len(infos) != len(DefaultProfiles()) {
		t.Fatalf("expected %d device infos, got %d", len(DefaultProfiles()), len(infos))
	}
	for i, p := range DefaultProfiles() {
		if infos[i].Device != p.Device || infos[i].MinWatts != p.MinWatts || infos[i].MaxWatts != p.MaxWatts {
			t.Fatalf("device info %d does not match profile: %+v vs %+v", i, infos[i], p)
		}
		if infos[i].Label == "" {
			t.Fatalf("expected non-empty label for %s", p.Device)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	store := history.NewStore(models.AllDevices(), 100)

	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected error for nil store")
	}

	bad := []Profile{{Device: models.DeviceFridge, MinWatts: 100, MaxWatts: 50}}
	if _, err := New(Config{Profiles: bad}, store); err == nil {
		t.Fatal("expected error for inverted watt bounds")
	}

	dup := []Profile{
		{Device: models.DeviceFridge, MinWatts: 1, MaxWatts: 2},
		{Device: models.DeviceFridge, MinWatts: 3, MaxWatts: 4},
	}
	if _, err := New(Config{Profiles: dup}, store); err == nil {
		t.Fatal("expected error for duplicate device profile")
	}
}
