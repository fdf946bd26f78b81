package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionAssignRe finds a version assignment in a source file, e.g.
// __version__ = "1.2.3" or version = '1.2.3'. Double and single quoted
// forms are matched separately since backreferences are unavailable.
var versionAssignRe = regexp.MustCompile(`(?m)^(?:__version__|version) *= *(?:"([^"]*)"|'([^']*)')`)

// tagRefPrefix is the ref namespace a release ref must point into.
const tagRefPrefix = "refs/tags/"

// FindVersion returns the declared version: the explicit value when set,
// otherwise the first version assignment found in the version file
// content. Exactly one of version and versionFileContent must be
// provided.
func FindVersion(version, versionFileContent string) (string, error) {
	if version != "" && versionFileContent != "" {
		return "", fmt.Errorf("version and version file arguments are ambiguous")
	}
	if version != "" {
		return version, nil
	}
	if versionFileContent == "" {
		return "", fmt.Errorf("neither version nor version file is set")
	}

	if m := versionAssignRe.FindStringSubmatch(versionFileContent); m != nil {
		if m[1] != "" {
			return m[1], nil
		}
		return m[2], nil
	}
	return "", fmt.Errorf("unable to determine version in version file")
}

// CheckRef verifies that a git ref points at a tag matching the version
// ("v" prefix tolerated). An empty ref is accepted, so local runs
// without a checked-out tag still work.
func CheckRef(version, ref string) error {
	if ref == "" {
		return nil
	}
	if !strings.HasPrefix(ref, tagRefPrefix) {
		return fmt.Errorf("git head %q doesn't point at a tag", ref)
	}
	tag := strings.TrimPrefix(ref, tagRefPrefix)
	if tag != version && tag != "v"+version {
		return fmt.Errorf("git tag %q mismatches with version %q", tag, version)
	}
	return nil
}

// CheckVersions verifies the declared distribution version against the
// version found in the changelog head, with a hint about which side is
// stale.
func CheckVersions(declared, found string) error {
	if declared == found {
		return nil
	}

	dver, derr := parseVersion(declared)
	fver, ferr := parseVersion(found)
	if derr != nil || ferr != nil {
		return fmt.Errorf("the distribution version %q mismatches the changelog version %q", declared, found)
	}

	if dver.LessThan(fver) {
		return fmt.Errorf("the distribution version %s is older than %s from the changelog.\n"+
			"Hint: push a git tag with the latest version", declared, found)
	}
	return fmt.Errorf("the distribution version %s is younger than %s from the changelog.\n"+
		"Hint: regenerate the changelog for the new version", declared, found)
}

// ReleaseKind describes how a version should be published.
type ReleaseKind struct {
	Version    string
	PreRelease bool
	DevRelease bool
}

// Kind classifies a version string. Dev releases are pre-releases whose
// pre-release component starts with "dev" (e.g. 1.2.0-dev.3).
func Kind(version string) (ReleaseKind, error) {
	v, err := parseVersion(version)
	if err != nil {
		return ReleaseKind{}, fmt.Errorf("parsing version %q: %w", version, err)
	}
	pre := v.Prerelease()
	return ReleaseKind{
		Version:    version,
		PreRelease: pre != "",
		DevRelease: strings.HasPrefix(pre, "dev"),
	}, nil
}

// parseVersion parses a version leniently, tolerating a "v" prefix and
// partial versions like "1.2".
func parseVersion(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(s), "v"))
}
