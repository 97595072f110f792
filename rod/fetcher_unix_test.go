//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/wikicrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// running reports whether a process with pid exists. Signal 0 checks
// existence without delivering anything.
func running(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, running(pid))

	require.NoError(t, fetcher.Close())

	assert.Eventually(t, func() bool { return !running(pid) }, 2*time.Second, 50*time.Millisecond)
	assert.Zero(t, fetcher.LauncherPID())
}

func TestBrowserManager_Restart_KillsPreviousLauncher(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()
	old := manager.LauncherPID()
	require.True(t, running(old))

	manager.IncrementPageCount()
	manager.Browser()

	assert.Eventually(t, func() bool { return !running(old) }, 2*time.Second, 50*time.Millisecond)
	assert.True(t, running(manager.LauncherPID()))
}
