package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseDir(t *testing.T) {
	t.Run("default uses home directory", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".pspr")
		if dir != expected {
			t.Errorf("BaseDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("PSPR_DIR overrides default", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "/tmp/pspr-test")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		if dir != "/tmp/pspr-test" {
			t.Errorf("BaseDir() = %q, want %q", dir, "/tmp/pspr-test")
		}
	})
}

func TestConfigPath(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "")

		path, err := ConfigPath()
		if err != nil {
			t.Fatalf("ConfigPath() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "pspr", "config.toml")
		if path != expected {
			t.Errorf("ConfigPath() = %q, want %q", path, expected)
		}
	})

	t.Run("PSPR_DIR override", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "/tmp/pspr-test")

		path, err := ConfigPath()
		if err != nil {
			t.Fatalf("ConfigPath() error = %v", err)
		}
		expected := filepath.Join("/tmp/pspr-test", "config", "config.toml")
		if path != expected {
			t.Errorf("ConfigPath() = %q, want %q", path, expected)
		}
	})
}

func TestWorkspaceSettingsPath(t *testing.T) {
	got := WorkspaceSettingsPath("/home/dev/game")
	want := filepath.Join("/home/dev/game", ".pspr.yaml")
	if got != want {
		t.Errorf("WorkspaceSettingsPath() = %q, want %q", got, want)
	}
}

func TestPIDPath(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		pidPath string
		want    string
	}{
		{"PSPR_DIR derives PID path", "/tmp/pspr-test", "", filepath.Join("/tmp/pspr-test", "ppsspp.pid")},
		{"PSPR_PID_PATH overrides PSPR_DIR", "/tmp/pspr-test", "/custom/emu.pid", "/custom/emu.pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPsprDir, tt.dir)
			t.Setenv(EnvPIDPath, tt.pidPath)

			if got := PIDPath(); got != tt.want {
				t.Errorf("PIDPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	t.Run("default uses home directory", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "")
		t.Setenv(EnvLogPath, "")

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".pspr", "pspr.log")
		if got := LogPath(); got != expected {
			t.Errorf("LogPath() = %q, want %q", got, expected)
		}
	})

	t.Run("PSPR_LOG_PATH overrides", func(t *testing.T) {
		t.Setenv(EnvPsprDir, "/tmp/pspr-test")
		t.Setenv(EnvLogPath, "/var/log/pspr.log")

		if got := LogPath(); got != "/var/log/pspr.log" {
			t.Errorf("LogPath() = %q, want %q", got, "/var/log/pspr.log")
		}
	})
}
