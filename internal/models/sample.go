package models

import "time"

// Device identifies one of the simulated appliances tracked by the dashboard.
// The set is fixed for the lifetime of the process.
type Device string

const (
	DeviceFridge         Device = "fridge"
	DeviceAirConditioner Device = "air_conditioner"
	DeviceSmartLight     Device = "smart_light"
)

// AllDevices returns the fixed device set in stable display order.
func AllDevices() []Device {
	return []Device{DeviceFridge, DeviceAirConditioner, DeviceSmartLight}
}

// Label returns the human-readable name used by the dashboard legend.
func (d Device) Label() string {
	switch d {
	case DeviceFridge:
		return "Fridge"
	case DeviceAirConditioner:
		return "Air Conditioner"
	case DeviceSmartLight:
		return "Smart Light"
	}
	return string(d)
}

// Valid reports whether d is one of the known simulated appliances.
func (d Device) Valid() bool {
	switch d {
	case DeviceFridge, DeviceAirConditioner, DeviceSmartLight:
		return true
	}
	return false
}

// Sample represents one simulated power reading for a single device.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Device    Device    `json:"device"`
	Watts     float64   `json:"watts"`
}

// DeviceInfo describes a device and the bounds its simulated readings
// are drawn from, as reported by the /api/devices endpoint.
type DeviceInfo struct {
	Device   Device  `json:"device"`
	Label    string  `json:"label"`
	MinWatts float64 `json:"min_watts"`
	MaxWatts float64 `json:"max_watts"`
}
