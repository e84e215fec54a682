package restriction

import (
	"sync"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

var (
	// globalService holds the singleton restriction policy.
	globalService *Service

	// serviceMutex protects access to globalService.
	serviceMutex sync.RWMutex

	// initOnce ensures the service is built only once per process
	// lifetime; Reset rearms it for tests that flip environment
	// variables and need a fresh singleton.
	initOnce sync.Once
)

// Initialize builds the restriction Service from allowLists and stores it
// as the global singleton. Subsequent calls within the same process are
// ignored unless Reset has been called first.
func Initialize(allowLists map[capabilities.ProviderKind]string) {
	initOnce.Do(func() {
		svc := New(allowLists)
		serviceMutex.Lock()
		globalService = svc
		serviceMutex.Unlock()
	})
}

// Get returns the global restriction Service. It returns nil if
// Initialize has not been called.
func Get() *Service {
	serviceMutex.RLock()
	defer serviceMutex.RUnlock()
	return globalService
}

// SetForTest installs svc as the global singleton directly, bypassing
// Initialize's sync.Once guard. Intended for tests only.
func SetForTest(svc *Service) {
	serviceMutex.Lock()
	defer serviceMutex.Unlock()
	globalService = svc
}

// Reset clears the global singleton and rearms Initialize. Intended for
// tests that need to simulate a fresh process after changing environment
// variables.
func Reset() {
	serviceMutex.Lock()
	globalService = nil
	serviceMutex.Unlock()
	initOnce = sync.Once{}
}
