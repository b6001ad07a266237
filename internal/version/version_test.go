package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	if got := String(); !strings.HasPrefix(got, "pspr 1.2.3 (commit: ") {
		t.Errorf("String() = %q", got)
	}
}

func TestResolved(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v0.4.0"
	if got := Resolved(); got != "v0.4.0" {
		t.Errorf("Resolved() = %q, want ldflags version", got)
	}

	Version = "dev"
	if got := Resolved(); got != "dev" && !strings.HasPrefix(got, "v") {
		t.Errorf("Resolved() = %q, want dev or a module version", got)
	}
}
