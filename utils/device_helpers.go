package utils

import (
	"github.com/rs/zerolog/log"

	"github.com/lewiswr/odl/device"
)

// CreateTestDevice creates a device for testing, preferring parallel
// backends and falling back to Serial.
func CreateTestDevice() *device.Device {
	dev, err := device.OpenDefault()
	if err != nil {
		// Serial should always be available
		panic("failed to create any device: " + err.Error())
	}
	log.Info().Str("mode", dev.Mode()).Msg("created test device")
	return dev
}
