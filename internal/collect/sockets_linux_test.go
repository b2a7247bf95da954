//go:build linux

package collect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeProcNet(t *testing.T, root, table, content string) {
	t.Helper()
	dir := filepath.Join(root, "net")
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, table), []byte(content), 0o644))
}

func TestProcSocketSourceReadsTables(t *testing.T) {
	root := t.TempDir()
	writeProcNet(t, root, "tcp", sampleTCP)
	writeProcNet(t, root, "udp", sampleUDP)

	records, err := ProcSocketSource{Root: root}.Sockets()
	assert.NoError(t, err)
	assert.Len(t, records, 4, "tcp6/udp6 missing is tolerated")

	protos := map[string]int{}
	for _, r := range records {
		protos[r.Protocol]++
	}
	assert.Equal(t, 3, protos["tcp"])
	assert.Equal(t, 1, protos["udp"])
}

func TestProcSocketSourceNoTablesUnavailable(t *testing.T) {
	_, err := ProcSocketSource{Root: t.TempDir()}.Sockets()
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestProcOwnerSourceJoinsInodes(t *testing.T) {
	root := t.TempDir()
	fdDir := filepath.Join(root, "42", "fd")
	assert.NoError(t, os.MkdirAll(fdDir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(root, "42", "comm"), []byte("nginx\n"), 0o644))
	assert.NoError(t, os.Symlink("socket:[12345]", filepath.Join(fdDir, "3")))
	assert.NoError(t, os.Symlink("/dev/null", filepath.Join(fdDir, "0")))
	// non-pid entries are skipped
	assert.NoError(t, os.MkdirAll(filepath.Join(root, "sys"), 0o755))

	owners, err := ProcOwnerSource{Root: root}.Owners()
	assert.NoError(t, err)
	assert.Equal(t, SocketOwner{PID: 42, Command: "nginx"}, owners["12345"])
	assert.Len(t, owners, 1)
}

func TestProcOwnerSourceDeniedIsPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory modes are not enforced for root")
	}

	root := t.TempDir()
	fdDir := filepath.Join(root, "42", "fd")
	assert.NoError(t, os.MkdirAll(fdDir, 0o755))
	assert.NoError(t, os.Chmod(fdDir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(fdDir, 0o755) })

	owners, err := ProcOwnerSource{Root: root}.Owners()
	assert.True(t, errors.Is(err, ErrPermission))
	assert.Empty(t, owners)
}

func TestSystemCollectorWiring(t *testing.T) {
	c := NewSystemCollector()
	assert.Equal(t, ProcSocketSource{Root: "/proc"}, c.Sockets)
	assert.NotNil(t, c.Owners)
	assert.NotNil(t, c.Interfaces)
	assert.NotNil(t, c.Routes)
	assert.NotNil(t, c.Processes)
}
