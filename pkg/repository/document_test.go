package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	_ "modernc.org/sqlite"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/repository/jsonfile"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
	"github.com/secmon-lab/mnemosyne/pkg/repository/sqlite"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, jsonfile.ErrNotFound) ||
		errors.Is(err, sqlite.ErrNotFound)
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const userID = types.UserID("test-user")

	t.Run("Get returns ErrNotFound for missing document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetDocument(ctx, userID)
		gt.Error(t, err)
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Put then Get round-trips the document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := model.NewMemoryDocument()
		now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		doc.AppendEvent("started journaling", now)
		goal := doc.AddGoal("learn piano", "personal", now)
		doc.UpdateGoalProgress(goal.ID, 30)
		habit := doc.AddHabit("practice scales", types.HabitFrequencyDaily, now)
		doc.CheckInHabit(habit.ID, now)
		doc.AddMoodEntry(model.MoodEntry{
			Emotion:   "content",
			Intensity: 6,
			Factors:   []string{"music", "rest"},
			Timestamp: now,
		})

		gt.NoError(t, repo.PutDocument(ctx, userID, doc)).Required()

		loaded, err := repo.GetDocument(ctx, userID)
		gt.NoError(t, err).Required()

		gt.Array(t, loaded.LifeEvents).Length(1)
		gt.Value(t, loaded.LifeEvents[0].Text).Equal("started journaling")
		gt.Value(t, loaded.Goals[goal.ID].Progress).Equal(30)
		gt.Array(t, loaded.Habits[habit.ID].CheckIns).Length(1)
		gt.Array(t, loaded.MoodEntries).Length(1)
		gt.Array(t, loaded.MoodEntries[0].Factors).Length(2)
		gt.Value(t, loaded.NextGoalID).Equal(doc.NextGoalID)
		gt.Value(t, loaded.NextHabitID).Equal(doc.NextHabitID)
	})

	t.Run("Put replaces the whole document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := model.NewMemoryDocument()
		doc.AppendEvent("first", time.Now().UTC())
		gt.NoError(t, repo.PutDocument(ctx, userID, doc)).Required()

		replacement := model.NewMemoryDocument()
		replacement.AppendEvent("second", time.Now().UTC())
		gt.NoError(t, repo.PutDocument(ctx, userID, replacement)).Required()

		loaded, err := repo.GetDocument(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, loaded.LifeEvents).Length(1)
		gt.Value(t, loaded.LifeEvents[0].Text).Equal("second")
	})

	t.Run("Delete removes the document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.PutDocument(ctx, userID, model.NewMemoryDocument())).Required()
		gt.NoError(t, repo.DeleteDocument(ctx, userID)).Required()

		_, err := repo.GetDocument(ctx, userID)
		gt.Bool(t, isNotFound(err)).True()

		// Deleting a missing document is not an error
		gt.NoError(t, repo.DeleteDocument(ctx, userID))
	})

	t.Run("ListUsers returns stored user IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.PutDocument(ctx, "alice", model.NewMemoryDocument())).Required()
		gt.NoError(t, repo.PutDocument(ctx, "bob", model.NewMemoryDocument())).Required()

		users, err := repo.ListUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(2)
		gt.Value(t, users[0]).Equal(types.UserID("alice"))
		gt.Value(t, users[1]).Equal(types.UserID("bob"))
	})

	t.Run("Documents are isolated per user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		docA := model.NewMemoryDocument()
		docA.AppendEvent("alice event", time.Now().UTC())
		docB := model.NewMemoryDocument()
		docB.AppendEvent("bob event", time.Now().UTC())

		gt.NoError(t, repo.PutDocument(ctx, "alice", docA)).Required()
		gt.NoError(t, repo.PutDocument(ctx, "bob", docB)).Required()

		loaded, err := repo.GetDocument(ctx, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.LifeEvents[0].Text).Equal("alice event")
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestJSONFileRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := jsonfile.New(t.TempDir())
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestSQLiteRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := sqlite.New(filepath.Join(t.TempDir(), "mnemosyne.db"))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, repo.Close())
		})
		return repo
	})
}

func TestJSONFileCorruptedDocument(t *testing.T) {
	dir := t.TempDir()
	repo, err := jsonfile.New(dir)
	gt.NoError(t, err).Required()

	// Malformed content must surface as a storage error, not a
	// silently regenerated skeleton
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644)).Required()

	_, err = repo.GetDocument(context.Background(), "broken")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, jsonfile.ErrCorrupted)).True()
	gt.Bool(t, goerr.HasTag(err, types.TagStorage)).True()
}

func TestJSONFileAtomicReplaceLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := jsonfile.New(dir)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	doc := model.NewMemoryDocument()
	for i := 0; i < 20; i++ {
		doc.AppendEvent("entry", time.Now().UTC())
		gt.NoError(t, repo.PutDocument(ctx, "writer", doc)).Required()
	}

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1)
	gt.Value(t, entries[0].Name()).Equal("writer.json")
}

func TestSQLiteCorruptedDocument(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mnemosyne.db")
	repo, err := sqlite.New(dbPath)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	gt.NoError(t, repo.PutDocument(ctx, "victim", model.NewMemoryDocument())).Required()

	// Corrupt the row behind the repository's back
	corruptRow(t, dbPath, "victim")

	_, err = repo.GetDocument(ctx, "victim")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, sqlite.ErrCorrupted)).True()
}

func corruptRow(t *testing.T, dbPath, userID string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	gt.NoError(t, err).Required()
	defer db.Close()

	_, err = db.Exec(`UPDATE user_memory SET document = '{broken' WHERE user_id = ?`, userID)
	gt.NoError(t, err).Required()
}
