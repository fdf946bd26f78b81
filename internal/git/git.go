// Package git collects raw change records from a local repository using
// the go-git library, so history can be read without a git CLI
// installation. It is a retrieval collaborator for the note pipeline: it
// promises identifiers, messages, authors, and timestamps, but no
// particular ordering; ordering is re-established deterministically
// inside the pipeline.
package git

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/raveheart1/relnote/internal/note"
)

// shortHashLen is the identifier length used for commit entries.
const shortHashLen = 7

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Collector reads commit history from one repository.
type Collector struct {
	repo *git.Repository
}

// Open opens the repository at path (or the current working directory
// when path is empty), traversing up the directory tree to find the
// repository root.
func Open(path string) (*Collector, error) {
	if path == "" || path == "." {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Collector{repo: repo}, nil
}

// EntriesBetween returns one RawEntry per commit in (from, to]. Both refs
// accept anything git rev-parse accepts (tags, branches, hashes, HEAD).
// An empty from walks back to the repository root. The from commit must
// be an ancestor of to; commits are returned in walk order with no
// ordering guarantee to callers.
func (c *Collector) EntriesBetween(from, to string) ([]note.RawEntry, error) {
	toHash, err := c.resolve(to)
	if err != nil {
		return nil, err
	}

	var fromHash *plumbing.Hash
	if from != "" {
		fromHash, err = c.resolve(from)
		if err != nil {
			return nil, err
		}
	}

	iter, err := c.repo.Log(&git.LogOptions{From: *toHash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}
	defer iter.Close()

	var entries []note.RawEntry
	err = iter.ForEach(func(commit *object.Commit) error {
		if fromHash != nil && commit.Hash == *fromHash {
			return storer.ErrStop
		}
		entries = append(entries, commitEntry(commit))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking log %s..%s: %w", from, to, err)
	}

	logDebug("[git] collected %d entries for %s..%s", len(entries), from, to)
	return entries, nil
}

// resolve turns a revision expression into a commit hash.
func (c *Collector) resolve(rev string) (*plumbing.Hash, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return hash, nil
}

// commitEntry maps a commit to a RawEntry. The short hash is the
// identifier; title and body are split on the first blank line.
func commitEntry(commit *object.Commit) note.RawEntry {
	title, body, _ := strings.Cut(commit.Message, "\n")
	return note.RawEntry{
		ID:        commit.Hash.String()[:shortHashLen],
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Author:    commit.Author.Name,
		Timestamp: commit.Author.When,
	}
}

// Head returns the short hash of the current HEAD commit.
func (c *Collector) Head() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String()[:shortHashLen], nil
}
