package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo builds a throwaway repository with a linear history and
// returns its path plus the commit hashes in creation order.
func testRepo(t *testing.T, messages []string) (string, []string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var hashes []string
	for i, msg := range messages {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte(msg), 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)

		hash, err := wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "alice",
				Email: "alice@example.com",
				When:  base.Add(time.Duration(i) * time.Minute),
			},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}
	return dir, hashes
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestOpen_DetectsFromSubdirectory(t *testing.T) {
	dir, _ := testRepo(t, []string{"init"})
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, err := Open(sub)
	assert.NoError(t, err)
}

func TestEntriesBetween(t *testing.T) {
	dir, hashes := testRepo(t, []string{
		"feat: first",
		"fix(parser): second\n\nCloses #12",
		"docs: third",
	})
	collector, err := Open(dir)
	require.NoError(t, err)

	entries, err := collector.EntriesBetween(hashes[0], "HEAD")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	ids := map[string]bool{entries[0].ID: true, entries[1].ID: true}
	assert.True(t, ids[hashes[1][:shortHashLen]])
	assert.True(t, ids[hashes[2][:shortHashLen]])

	for _, e := range entries {
		assert.Equal(t, "alice", e.Author)
		assert.False(t, e.Timestamp.IsZero())
		if e.ID == hashes[1][:shortHashLen] {
			assert.Equal(t, "fix(parser): second", e.Title)
			assert.Equal(t, "Closes #12", e.Body)
		}
	}
}

func TestEntriesBetween_EmptyFromWalksToRoot(t *testing.T) {
	dir, _ := testRepo(t, []string{"one", "two"})
	collector, err := Open(dir)
	require.NoError(t, err)

	entries, err := collector.EntriesBetween("", "HEAD")
	require.NoError(t, err)

	assert.Len(t, entries, 2)
}

func TestEntriesBetween_EmptyRange(t *testing.T) {
	dir, _ := testRepo(t, []string{"only"})
	collector, err := Open(dir)
	require.NoError(t, err)

	entries, err := collector.EntriesBetween("HEAD", "HEAD")
	require.NoError(t, err)

	assert.Empty(t, entries)
}

func TestEntriesBetween_UnknownRef(t *testing.T) {
	dir, _ := testRepo(t, []string{"only"})
	collector, err := Open(dir)
	require.NoError(t, err)

	_, err = collector.EntriesBetween("", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestHead(t *testing.T) {
	dir, hashes := testRepo(t, []string{"one", "two"})
	collector, err := Open(dir)
	require.NoError(t, err)

	head, err := collector.Head()
	require.NoError(t, err)

	assert.Equal(t, hashes[1][:shortHashLen], head)
}
