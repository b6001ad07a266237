package instance

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestRecordAndRead(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "nested", "ppsspp.pid"))

	if err := f.Record(12345); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	pid, err := f.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if pid != 12345 {
		t.Errorf("Read() = %d, want 12345", pid)
	}

	info, err := os.Stat(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("pid file mode = %o, want 600", perm)
	}
}

func TestReadMissing(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))

	if _, err := f.Read(); !os.IsNotExist(err) {
		t.Errorf("Read() error = %v, want not-exist", err)
	}
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppsspp.pid")
	if err := os.WriteFile(path, []byte("not-a-pid\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := New(path).Read(); err == nil {
		t.Error("Read() expected parse error")
	}
}

func TestClearOnlyOwnPID(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
	if err := f.Record(200); err != nil {
		t.Fatal(err)
	}

	if err := f.Clear(100); err != nil {
		t.Fatalf("Clear(other) error = %v", err)
	}
	if _, err := f.Read(); err != nil {
		t.Fatalf("file owned by another launch was removed: %v", err)
	}

	if err := f.Clear(200); err != nil {
		t.Fatalf("Clear(own) error = %v", err)
	}
	if _, err := f.Read(); !os.IsNotExist(err) {
		t.Errorf("Read() after Clear = %v, want not-exist", err)
	}

	if err := f.Clear(0); err != nil {
		t.Errorf("Clear on missing file = %v, want nil", err)
	}
}

func TestLive(t *testing.T) {
	t.Run("current process is live", func(t *testing.T) {
		f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
		if err := f.Record(os.Getpid()); err != nil {
			t.Fatal(err)
		}

		pid, ok := f.Live()
		if !ok || pid != os.Getpid() {
			t.Errorf("Live() = %d, %v; want %d, true", pid, ok, os.Getpid())
		}
	})

	t.Run("stale file is cleaned", func(t *testing.T) {
		cmd := exec.Command("true")
		if err := cmd.Run(); err != nil {
			t.Skipf("true not available: %v", err)
		}

		f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
		if err := f.Record(cmd.Process.Pid); err != nil {
			t.Fatal(err)
		}

		if _, ok := f.Live(); ok {
			t.Fatal("Live() = true for exited process")
		}
		if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
			t.Errorf("stale pid file still present: %v", err)
		}
	})

	t.Run("reused pid is stale", func(t *testing.T) {
		if _, err := StartTime(os.Getpid()); errors.Is(err, ErrStartTimeUnsupported) {
			t.Skip("no start times on this platform")
		}

		// A live process whose start time does not match the record.
		f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
		data := strconv.Itoa(os.Getpid()) + "\n1\n"
		if err := os.WriteFile(f.Path(), []byte(data), 0600); err != nil {
			t.Fatal(err)
		}

		if _, ok := f.Live(); ok {
			t.Fatal("Live() = true for a pid recorded with another start time")
		}
		if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
			t.Errorf("reused pid file still present: %v", err)
		}
	})

	t.Run("pid without start time is stale", func(t *testing.T) {
		if _, err := StartTime(os.Getpid()); errors.Is(err, ErrStartTimeUnsupported) {
			t.Skip("no start times on this platform")
		}

		f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
		if err := os.WriteFile(f.Path(), []byte(strconv.Itoa(os.Getpid())+"\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, ok := f.Live(); ok {
			t.Error("Live() = true for a pid file without a start time")
		}
	})

	t.Run("no file", func(t *testing.T) {
		f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
		if _, ok := f.Live(); ok {
			t.Error("Live() = true with no pid file")
		}
	})
}

func TestIsProcessRunning(t *testing.T) {
	if !IsProcessRunning(os.Getpid()) {
		t.Error("IsProcessRunning(self) = false")
	}
	if IsProcessRunning(0) || IsProcessRunning(-1) {
		t.Error("IsProcessRunning(<=0) = true")
	}
}

func TestRecordStoresStartTime(t *testing.T) {
	want, err := StartTime(os.Getpid())
	if errors.Is(err, ErrStartTimeUnsupported) {
		t.Skip("no start times on this platform")
	}
	if err != nil {
		t.Fatalf("StartTime(self) error = %v", err)
	}

	f := New(filepath.Join(t.TempDir(), "ppsspp.pid"))
	if err := f.Record(os.Getpid()); err != nil {
		t.Fatal(err)
	}
	e, err := f.ReadEntry()
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if e.PID != os.Getpid() || e.Start != want || want == "" {
		t.Errorf("ReadEntry() = %+v, want pid %d start %q", e, os.Getpid(), want)
	}
}

func TestStartTimeDiffersAcrossProcesses(t *testing.T) {
	self, err := StartTime(os.Getpid())
	if errors.Is(err, ErrStartTimeUnsupported) {
		t.Skip("no start times on this platform")
	}
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	cmd := exec.Command("sleep", "5")
	if err := cmd.Start(); err != nil {
		t.Skipf("sleep not available: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	child, err := StartTime(cmd.Process.Pid)
	if err != nil {
		t.Fatalf("StartTime(child) error = %v", err)
	}
	if child == self {
		t.Errorf("child and parent share start time %q", self)
	}
}

func TestLockSerializesProcesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppsspp.pid")
	first, second := New(path), New(path)

	unlock, err := first.Lock()
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	acquired := make(chan func())
	go func() {
		u, err := second.Lock()
		if err != nil {
			t.Errorf("second Lock() error = %v", err)
			close(acquired)
			return
		}
		acquired <- u
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock() succeeded while the first was held")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()

	select {
	case u, ok := <-acquired:
		if ok {
			u()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second Lock() still blocked after unlock")
	}
}
