package capture

import (
	"testing"

	"github.com/mitchellh/go-homedir"
)

func disableHomedirCache(t *testing.T) {
	t.Helper()
	prev := homedir.DisableCache
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = prev })
}
