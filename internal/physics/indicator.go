package physics

// Indicator is a single on/off output line, such as a status LED.
type Indicator interface {
	Set(on bool)
}

// NopIndicator discards writes.
type NopIndicator struct{}

func (NopIndicator) Set(bool) {}

// Pulse drives the indicator on for a fixed number of writes, then off.
// The duration is a spin count, not a calibrated time.
func Pulse(ind Indicator, spins int) {
	for range spins {
		ind.Set(true)
	}
	ind.Set(false)
}
