//go:build !windows

package windowstate

import (
	"fmt"
	"os"
	"syscall"
)

// lockFile takes an exclusive flock on path+".lock", blocking until it is
// free. The returned func releases it.
func lockFile(path string) (func() error, error) {
	f, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return func() error {
		if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return f.Close()
	}, nil
}
