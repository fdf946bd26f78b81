// Package forge retrieves change records from a hosting provider. The
// GitHub provider maps the commits of a base...head comparison and their
// associated pull requests to raw entries, fetching PR details
// concurrently. Entries come back in no guaranteed order; the note
// pipeline re-establishes ordering. Credential acquisition and rate-limit
// handling are the caller's concern: a token is accepted as-is.
package forge

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/relnote/internal/note"
)

// prFetchConcurrency bounds parallel pull request lookups so a large
// range doesn't burst the API.
const prFetchConcurrency = 4

// shortHashLen matches the identifier length used for local commits so
// cross-references line up during deduplication.
const shortHashLen = 7

// GitHub reads history from the GitHub API.
type GitHub struct {
	client *github.Client
}

// NewGitHub returns a provider. An empty token uses unauthenticated
// access (fine for public repositories within rate limits).
func NewGitHub(token string) *GitHub {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(),
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return &GitHub{client: github.NewClient(httpClient)}
}

// newGitHubWithClient is used by tests to point the provider at a fake.
func newGitHubWithClient(client *github.Client) *GitHub {
	return &GitHub{client: client}
}

// EntriesBetween returns one RawEntry per change in base...head. Commits
// that belong to a pull request are represented by the PR entry (with
// labels and the merge commit as a cross-reference); commits without an
// associated PR are returned as plain commit entries.
func (g *GitHub) EntriesBetween(ctx context.Context, owner, repo, base, head string) ([]note.RawEntry, error) {
	cmp, _, err := g.client.Repositories.CompareCommits(ctx, owner, repo, base, head,
		&github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("comparing %s...%s: %w", base, head, err)
	}

	commits := cmp.Commits
	prsByCommit := make([][]*github.PullRequest, len(commits))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(prFetchConcurrency)
	for i, commit := range commits {
		group.Go(func() error {
			prs, _, err := g.client.PullRequests.ListPullRequestsWithCommit(
				groupCtx, owner, repo, commit.GetSHA(), &github.ListOptions{PerPage: 20})
			if err != nil {
				return fmt.Errorf("listing pull requests for %s: %w", commit.GetSHA(), err)
			}
			prsByCommit[i] = prs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var entries []note.RawEntry
	seenPRs := make(map[int]bool)
	for i, commit := range commits {
		prs := prsByCommit[i]
		if len(prs) == 0 {
			entries = append(entries, commitEntry(commit))
			continue
		}
		for _, pr := range prs {
			if seenPRs[pr.GetNumber()] {
				continue
			}
			seenPRs[pr.GetNumber()] = true
			entries = append(entries, pullEntry(pr))
		}
	}

	return entries, nil
}

// commitEntry maps an API commit to a RawEntry.
func commitEntry(commit *github.RepositoryCommit) note.RawEntry {
	title, body, _ := strings.Cut(commit.GetCommit().GetMessage(), "\n")

	author := commit.GetAuthor().GetLogin()
	if author == "" {
		author = commit.GetCommit().GetAuthor().GetName()
	}

	return note.RawEntry{
		ID:        shortSHA(commit.GetSHA()),
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Author:    author,
		Timestamp: commit.GetCommit().GetAuthor().GetDate().Time,
	}
}

// pullEntry maps a pull request to a RawEntry. The merge commit is
// carried as a cross-reference so the PR merges with its squash commit
// during deduplication.
func pullEntry(pr *github.PullRequest) note.RawEntry {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	timestamp := pr.GetMergedAt().Time
	if timestamp.IsZero() {
		timestamp = pr.GetUpdatedAt().Time
	}

	var refs []string
	if sha := pr.GetMergeCommitSHA(); sha != "" {
		refs = append(refs, shortSHA(sha))
	}

	return note.RawEntry{
		ID:        fmt.Sprintf("#%d", pr.GetNumber()),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		Labels:    labels,
		Author:    pr.GetUser().GetLogin(),
		Timestamp: timestamp,
		Refs:      refs,
	}
}

// shortSHA truncates a full SHA to the common short form.
func shortSHA(sha string) string {
	if len(sha) > shortHashLen {
		return sha[:shortHashLen]
	}
	return sha
}
