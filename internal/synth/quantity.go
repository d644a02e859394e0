package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// memoryQuantity converts a compose memory size ("512m", "1g", 268435456)
// into a Kubernetes binary quantity.
func memoryQuantity(s string) (string, error) {
	b, err := units.RAMInBytes(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("memory %q: %w", s, err)
	}
	if b <= 0 {
		return "", fmt.Errorf("memory %q: must be positive", s)
	}
	switch {
	case b%units.GiB == 0:
		return fmt.Sprintf("%dGi", b/units.GiB), nil
	case b%units.MiB == 0:
		return fmt.Sprintf("%dMi", b/units.MiB), nil
	case b%units.KiB == 0:
		return fmt.Sprintf("%dKi", b/units.KiB), nil
	}
	return strconv.FormatInt(b, 10), nil
}

// cpuQuantity converts a compose cpus value ("0.5", "2") into a Kubernetes
// cpu quantity, using millicores when the value is fractional.
func cpuQuantity(s string) (string, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("cpus %q: not a number", s)
	}
	milli := int64(math.Round(f * 1000))
	if milli <= 0 {
		return "", fmt.Errorf("cpus %q: must be positive", s)
	}
	if milli%1000 == 0 {
		return strconv.FormatInt(milli/1000, 10), nil
	}
	return fmt.Sprintf("%dm", milli), nil
}
