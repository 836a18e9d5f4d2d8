//go:build windows

package windowstate

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// lockFile takes an exclusive LockFileEx lock on path+".lock", blocking
// until it is free. The returned func releases it.
func lockFile(path string) (func() error, error) {
	f, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	// No LOCKFILE_FAIL_IMMEDIATELY: wait for the lock.
	ol := &windows.Overlapped{}
	if err := windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return func() error {
		ol := &windows.Overlapped{}
		if err := windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, ol); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return f.Close()
	}, nil
}
