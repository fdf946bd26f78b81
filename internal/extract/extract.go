// Package extract pulls a single release's section out of an existing
// changelog file (towncrier-style), verifying that the declared
// distribution version, the changelog head line, and the pushed git tag
// all agree before a release note is published.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Options controls how the changelog is sliced.
type Options struct {
	// StartLine is the literal marker after which release records begin
	// (e.g. ".. towncrier release notes start").
	StartLine string
	// HeadLine is the version head pattern with {version}, {date}, and
	// {name} placeholders, e.g. "{version} \\({date}\\)\n=+\n".
	HeadLine string
	// FixIssueRegex / FixIssueRepl optionally rewrite issue references
	// in the extracted section (Go regexp syntax, $1-style groups).
	// Both must be set together.
	FixIssueRegex string
	FixIssueRepl  string
	// Name replaces the {name} placeholder in HeadLine.
	Name string
}

// versionGroupPattern matches the bracketed version inside a head line:
// digits, dots, pre-release letters, and an optional .postN suffix.
const versionGroupPattern = `\[(?P<version>[0-9][0-9.abcr]+(\.post[0-9]+)?)\]`

// datePattern matches the {date} placeholder.
const datePattern = `\d+-\d+-\d+`

// Extract returns the changelog section belonging to declaredVersion.
// The section runs from the version's head line to the next head line
// (or end of input when this is the only release record). The version
// found in the head line must agree with declaredVersion per
// CheckVersions.
func Extract(changes, declaredVersion string, opts Options) (string, error) {
	if (opts.FixIssueRegex == "") != (opts.FixIssueRepl == "") {
		return "", fmt.Errorf("fix_issue_regex and fix_issue_repl should be used together")
	}

	_, msg, found := strings.Cut(changes, opts.StartLine)
	if !found {
		return "", fmt.Errorf("cannot find changelog start mark (%q)", opts.StartLine)
	}
	msg = strings.TrimSpace(msg)

	headRe, err := headPattern(opts.HeadLine, opts.Name)
	if err != nil {
		return "", err
	}

	loc := headRe.FindStringSubmatchIndex(msg)
	if loc == nil || loc[0] != 0 {
		return "", fmt.Errorf("cannot find version head mark (%q) in changelog", headRe.String())
	}

	foundVersion := groupByName(headRe, msg, loc, "version")
	if err := CheckVersions(declaredVersion, foundVersion); err != nil {
		return "", err
	}

	section := msg[loc[1]:]
	if next := headRe.FindStringIndex(section); next != nil {
		// Older release records follow; keep only the newest section.
		section = section[:next[0]]
	}

	if opts.FixIssueRegex != "" {
		issueRe, err := regexp.Compile(opts.FixIssueRegex)
		if err != nil {
			return "", fmt.Errorf("compiling fix_issue_regex: %w", err)
		}
		section = issueRe.ReplaceAllString(section, opts.FixIssueRepl)
	}

	return strings.TrimSpace(section), nil
}

// headPattern expands the placeholders in a head line template into a
// multiline regexp.
func headPattern(headLine, name string) (*regexp.Regexp, error) {
	expanded := strings.NewReplacer(
		"{version}", versionGroupPattern,
		"{date}", datePattern,
		"{name}", regexp.QuoteMeta(name),
	).Replace(headLine)

	re, err := regexp.Compile("(?m)" + expanded)
	if err != nil {
		return nil, fmt.Errorf("compiling head line pattern %q: %w", headLine, err)
	}
	return re, nil
}

// groupByName extracts a named group from a submatch index set.
func groupByName(re *regexp.Regexp, s string, loc []int, name string) string {
	for i, groupName := range re.SubexpNames() {
		if groupName == name && loc[2*i] >= 0 {
			return s[loc[2*i]:loc[2*i+1]]
		}
	}
	return ""
}
