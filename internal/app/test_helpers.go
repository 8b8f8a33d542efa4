package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an app over fs with debug logging captured in the
// returned buffer. Set NODEGRID_TEST_LOGS=true to print the buffer after the
// test.
func SetupAppTest(t *testing.T, cfg *Config, fs afero.Fs, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(logBuffer, cfg, fs, modules...)

	t.Cleanup(func() {
		if os.Getenv("NODEGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
