package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synastry-service/models"
	"synastry-service/service"
)

type fakeRegistrar struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeRegistrar) CreateProfile(ctx context.Context, in service.ProfileInput) (models.Profile, error) {
	if in.Username == "" {
		return models.Profile{}, errors.New("username is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, in.Username)
	return models.Profile{ID: "id-" + in.Username, Username: in.Username}, nil
}

func (f *fakeRegistrar) registered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...)
}

type countingRecorder struct {
	mu       sync.Mutex
	ok, fail int
}

func (c *countingRecorder) InboxFile(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.ok++
	} else {
		c.fail++
	}
}

func writeAtomic(t *testing.T, dir, name, content string) string {
	t.Helper()
	tmp := filepath.Join(dir, name+".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	path := filepath.Join(dir, name)
	require.NoError(t, os.Rename(tmp, path))
	return path
}

func receive(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestCollectorProcessesExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"username":"alice"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o600))

	reg := &fakeRegistrar{}
	rec := &countingRecorder{}
	pc := NewProfileCollector(dir, reg, zap.NewNop())
	pc.SetFileTimeout(time.Second)
	pc.SetRecorder(rec)

	stop, err := pc.Start(context.Background())
	require.NoError(t, err)

	first := receive(t, pc.OutputChannel())
	assert.Equal(t, "alice", first.Profile.Username)
	assert.Equal(t, filepath.Join(dir, "a.json"), first.Path)

	path := writeAtomic(t, dir, "b.json", `{"username":"bob"}`)
	second := receive(t, pc.OutputChannel())
	assert.Equal(t, "bob", second.Profile.Username)
	assert.Equal(t, path, second.Path)

	stop()
	stop()

	assert.Equal(t, []string{"alice", "bob"}, reg.registered())
	_, open := <-pc.OutputChannel()
	assert.False(t, open)

	rec.mu.Lock()
	assert.Equal(t, 2, rec.ok)
	rec.mu.Unlock()
}

func TestCollectorReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"username":`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{}`), 0o600))

	reg := &fakeRegistrar{}
	pc := NewProfileCollector(dir, reg, nil)
	stop, err := pc.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	for i := 0; i < 2; i++ {
		select {
		case err := <-pc.ErrorChannel():
			assert.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for error")
		}
	}
	assert.Empty(t, reg.registered())
}

func TestCollectorWaitsForEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carol.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	reg := &fakeRegistrar{}
	rec := &countingRecorder{}
	pc := NewProfileCollector(dir, reg, zap.NewNop())
	pc.SetRecorder(rec)
	stop, err := pc.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"username":"carol"}`), 0o600))
	got := receive(t, pc.OutputChannel())
	assert.Equal(t, "carol", got.Profile.Username)

	select {
	case err := <-pc.ErrorChannel():
		t.Fatalf("unexpected inbox error: %v", err)
	default:
	}
	rec.mu.Lock()
	assert.Equal(t, 1, rec.ok)
	assert.Equal(t, 0, rec.fail)
	rec.mu.Unlock()
}

func TestCollectorCreatesInbox(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "inbox")
	pc := NewProfileCollector(dir, &fakeRegistrar{}, nil)

	stop, err := pc.Start(context.Background())
	require.NoError(t, err)
	stop()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestIsProfileFile(t *testing.T) {
	assert.True(t, isProfileFile("/in/a.json"))
	assert.True(t, isProfileFile("B.JSON"))
	assert.False(t, isProfileFile("a.json.tmp"))
	assert.False(t, isProfileFile("a.txt"))
}
