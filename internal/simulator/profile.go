package simulator

import "github.com/bryanmalak/real-time-power-monitoring/internal/models"

// Profile bounds the plausible power draw for one appliance class. Every
// generated sample for the device lies inside [MinWatts, MaxWatts].
type Profile struct {
	Device   models.Device
	MinWatts float64
	MaxWatts float64

	// IdleMaxWatts caps the draw while the appliance duty cycle is off.
	// Zero disables duty cycling and the device draws uniformly across
	// its full range.
	IdleMaxWatts float64
	// ActiveMinWatts floors the draw while the duty cycle is on.
	ActiveMinWatts float64
	// DutyChance is the per-tick probability of toggling between the
	// idle and active bands.
	DutyChance float64
}

// dutyCycled reports whether the profile alternates between an idle band
// and an active band instead of sweeping its whole range.
func (p Profile) dutyCycled() bool {
	return p.IdleMaxWatts > 0 && p.ActiveMinWatts > p.IdleMaxWatts
}

// DefaultProfiles returns the demo appliance set. The exact bands are an
// implementation choice; they only need to look plausible on a chart.
// The fridge cycles around a mid baseline as its compressor kicks in and
// out, the air conditioner idles low with intermittent compressor draw,
// and the smart light stays in a low band.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Device:         models.DeviceFridge,
			MinWatts:       80,
			MaxWatts:       250,
			IdleMaxWatts:   130,
			ActiveMinWatts: 180,
			DutyChance:     0.15,
		},
		{
			Device:         models.DeviceAirConditioner,
			MinWatts:       45,
			MaxWatts:       1400,
			IdleMaxWatts:   120,
			ActiveMinWatts: 850,
			DutyChance:     0.10,
		},
		{
			Device:   models.DeviceSmartLight,
			MinWatts: 4,
			MaxWatts: 60,
		},
	}
}
