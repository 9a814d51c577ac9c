package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "chatbuf.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStorage(t)

	_, _, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	_, _, err = s.LoadRevision(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	model := domain.DefaultModel()

	rev, err := s.Save(ctx, model)
	require.NoError(t, err)
	_, err = uuid.Parse(rev.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CurrentSelection(), rev.Selection)

	loaded, loadedRev, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rev.ID, loadedRev.ID)
	assert.Equal(t, model, loaded)
	assert.NoError(t, loaded.Validate())
}

func TestServerBufferLinesDoNotBecomeChannelBuffers(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	model := domain.DefaultModel()
	model, err := model.AppendLine(domain.NamePair{Server: "OFTC", Channel: domain.ServerBufferKey},
		domain.Line{Nick: "*", Text: "connected"})
	require.NoError(t, err)
	model, err = model.SetDraft(domain.NamePair{Server: "OFTC", Channel: domain.ServerBufferKey}, "/join #x")
	require.NoError(t, err)
	model = model.Select("OFTC", domain.ServerBufferKey)

	_, err = s.Save(ctx, model)
	require.NoError(t, err)

	loaded, _, err := s.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.BufferMap, domain.NamePair{Server: "OFTC", Channel: domain.ServerBufferKey})
	assert.Equal(t, 2, loaded.GetServerBuffer("OFTC").Len())
	assert.Equal(t, "/join #x", loaded.GetServerBuffer("OFTC").NewLine)
	assert.Equal(t, model.CurrentBuffer(), loaded.CurrentBuffer())
}

func TestSaveKeepsDanglingSelection(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	model := domain.DefaultModel().Select("Gone", "#nowhere")
	_, err := s.Save(ctx, model)
	require.NoError(t, err)

	loaded, _, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewNamePair("Gone", "#nowhere"), loaded.CurrentSelection())
	assert.Equal(t, domain.ErrorBuffer(), loaded.CurrentBuffer())
}

func TestSaveRejectsInvalidSnapshot(t *testing.T) {
	s := newTestStorage(t)

	model := domain.NewModel()
	model.BufferMap[domain.NewNamePair("Gone", "#x")] = domain.NewBuffer()

	_, err := s.Save(context.Background(), model)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	require.ErrorIs(t, err, domain.ErrUnknownServer)

	_, _, err = s.Load(context.Background())
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRevisionsAndLoadRevision(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := domain.DefaultModel()
	second := first.Select("OFTC", "#oftc")

	rev1, err := s.Save(ctx, first)
	require.NoError(t, err)
	rev2, err := s.Save(ctx, second)
	require.NoError(t, err)

	revs, err := s.Revisions(ctx)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, rev2.ID, revs[0].ID)
	assert.Equal(t, rev1.ID, revs[1].ID)
	assert.True(t, revs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	old, _, err := s.LoadRevision(ctx, rev1.ID)
	require.NoError(t, err)
	assert.Equal(t, first.CurrentSelection(), old.CurrentSelection())

	latest, _, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.CurrentSelection(), latest.CurrentSelection())
}

func TestPrune(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		rev, err := s.Save(ctx, domain.DefaultModel())
		require.NoError(t, err)
		ids = append(ids, rev.ID)
	}

	_, err := s.Prune(ctx, 0, false)
	require.Error(t, err)

	n, err := s.Prune(ctx, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	revs, err := s.Revisions(ctx)
	require.NoError(t, err)
	assert.Len(t, revs, 4, "dry run must not delete")

	n, err = s.Prune(ctx, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	revs, err = s.Revisions(ctx)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, ids[3], revs[0].ID)
	assert.Equal(t, ids[2], revs[1].ID)

	_, _, err = s.LoadRevision(ctx, ids[0])
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	var orphanLines int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM lines WHERE snapshot_seq NOT IN (SELECT seq FROM snapshots)`).Scan(&orphanLines))
	assert.Zero(t, orphanLines)

	n, err = s.Prune(ctx, 5, false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInMemoryDatabase(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), domain.DefaultModel())
	require.NoError(t, err)
	loaded, _, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded.Servers(), 2)
}
