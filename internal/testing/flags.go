package testing

import (
	"flag"
	"testing"
)

var (
	Integration = flag.Bool("integration", false, "run integration tests")
)

// SkipIfIntegration skips the test if -integration flag is set (for unit tests)
func SkipIfIntegration(t *testing.T) {
	if *Integration {
		t.Skip("Skipping unit test when running integration tests")
	}
}
