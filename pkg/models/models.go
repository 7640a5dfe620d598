package models

import (
	"fmt"
	"time"
)

// Device is one of the fixed viewport profiles screenshots can be captured
// for. The set is closed; the service rejects anything else.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// AllDevices returns the supported devices in display order.
func AllDevices() []Device {
	return []Device{DeviceMobile, DeviceTablet, DeviceDesktop}
}

// ParseDevice validates a device name from user input.
func ParseDevice(s string) (Device, error) {
	switch Device(s) {
	case DeviceMobile, DeviceTablet, DeviceDesktop:
		return Device(s), nil
	}
	return "", fmt.Errorf("unknown device %q (expected mobile, tablet or desktop)", s)
}

// Project is a named website target tracked by the remote service. The
// client only ever holds a disposable copy; the list is replaced wholesale
// on every load.
type Project struct {
	ID              int
	Name            string
	WebsiteURL      string
	ScreenshotCount int
	CreatedAt       time.Time
}

// Screenshot is one capture produced by the service for a project.
type Screenshot struct {
	ID         int
	ProjectID  int
	DeviceType Device
	DeviceName string
	Width      int
	Height     int
	CreatedAt  time.Time
}
