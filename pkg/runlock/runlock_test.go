package runlock

import "testing"

func TestAcquireAndReleaseRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestAcquireFailsWhenAlreadyLocked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(dir); err == nil {
		t.Fatal("expected second Acquire to fail while first lock is held")
	}
}

func TestReleaseOnNilLockIsNoop(t *testing.T) {
	t.Parallel()

	var lock *Lock

	if err := lock.Release(); err != nil {
		t.Fatalf("Release on nil lock: %v", err)
	}
}

func TestAcquireAllowsReacquireAfterRelease(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := Acquire(dir)
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	defer second.Release()
}
