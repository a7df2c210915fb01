package backend

import "sync"

// Backend name constants.
const (
	// Software is the name of the CPU-based fallback device.
	Software = "software"
	// WGPU is the name of the Pure Go GPU backend (gogpu/wgpu).
	WGPU = "wgpu"
)

// registry holds registered device factories.
var (
	registryMu sync.RWMutex
	devices    = make(map[string]DeviceFactory)
	// devicePriority orders backend selection when no explicit choice is
	// made: wgpu (hardware) before software (fallback).
	devicePriority = []string{WGPU, Software}
)

// Register registers a device factory with the given name. Typically
// called from an init() function in a backend package.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	devices[name] = factory
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(devices, name)
}

// Available returns the names of all registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend with the given name is
// registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := devices[name]
	return ok
}

// Get returns a device instance by name, or nil if unregistered.
func Get(name string) Device {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := devices[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available device based on devicePriority, or
// nil if nothing is registered.
func Default() Device {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range devicePriority {
		if factory, ok := devices[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}
	for _, factory := range devices {
		if d := factory(); d != nil {
			return d
		}
	}
	return nil
}

// MustDefault returns the default device or panics.
func MustDefault() Device {
	d := Default()
	if d == nil {
		panic("backend: no device available")
	}
	return d
}

// InitDefault initializes and returns the default device.
func InitDefault() (Device, error) {
	d := Default()
	if d == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}
