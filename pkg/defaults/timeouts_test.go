package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Handler timeouts
		{"SuggestHandlerTimeout", SuggestHandlerTimeout, 5 * time.Second, 30 * time.Second},
		{"StorageHandlerTimeout", StorageHandlerTimeout, 5 * time.Second, 30 * time.Second},
		{"SeedHandlerTimeout", SeedHandlerTimeout, 30 * time.Second, 120 * time.Second},

		// Store
		{"StoreOperationTimeout", StoreOperationTimeout, 1 * time.Second, 15 * time.Second},
		{"RedisDialTimeout", RedisDialTimeout, 1 * time.Second, 15 * time.Second},
		{"BreakerTimeout", BreakerTimeout, 5 * time.Second, 120 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 120 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// K8s timeouts
		{"K8sConfigMapTimeout", K8sConfigMapTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestHandlerTimeoutsFitServerWrite(t *testing.T) {
	// A handler must finish before the server gives up writing the response.
	for name, d := range map[string]time.Duration{
		"SuggestHandlerTimeout": SuggestHandlerTimeout,
		"StorageHandlerTimeout": StorageHandlerTimeout,
		"SeedHandlerTimeout":    SeedHandlerTimeout,
	} {
		if d >= ServerWriteTimeout {
			t.Errorf("%s (%v) should be less than ServerWriteTimeout (%v)", name, d, ServerWriteTimeout)
		}
	}
}

func TestStoreTimeoutLessThanHandler(t *testing.T) {
	if StoreOperationTimeout >= SuggestHandlerTimeout {
		t.Errorf("StoreOperationTimeout (%v) should be less than SuggestHandlerTimeout (%v)",
			StoreOperationTimeout, SuggestHandlerTimeout)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	// Read timeout should be shorter than write timeout
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}

	// Idle timeout should be longer than write timeout
	if ServerIdleTimeout < ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerWriteTimeout (%v)",
			ServerIdleTimeout, ServerWriteTimeout)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}

	if HTTPTLSHandshakeTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPTLSHandshakeTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPTLSHandshakeTimeout, HTTPClientTimeout)
	}
}

func TestSuggestionDefaults(t *testing.T) {
	if DefaultUserID == "" {
		t.Error("DefaultUserID should not be empty")
	}
	if RandomCount < 1 {
		t.Errorf("RandomCount (%d) should be positive", RandomCount)
	}
	if FoodsTable == UsersTable {
		t.Error("FoodsTable and UsersTable should differ")
	}
}
