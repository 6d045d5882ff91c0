package version

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Version is a plain semantic version (no prerelease/build metadata).
type Version struct {
	Major int
	Minor int
	Patch int
}

var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Parse converts "MAJOR.MINOR.PATCH" into a Version.
func Parse(value string) (Version, error) {
	match := semverPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return Version{}, fmt.Errorf("invalid version %q (expected MAJOR.MINOR.PATCH)", value)
	}
	major, _ := strconv.Atoi(match[1])
	minor, _ := strconv.Atoi(match[2])
	patch, _ := strconv.Atoi(match[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// BumpMinor returns the next minor version, resetting patch.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpMajor returns the next major version, resetting minor and patch.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// File reads and writes the VERSION file, mirroring the version into an
// adjacent package.json when one exists (legacy frontend builds read it).
type File struct {
	VersionPath     string
	PackageJSONPath string
}

// Read loads the current version from the VERSION file.
func (f File) Read() (Version, error) {
	raw, err := os.ReadFile(f.VersionPath)
	if err != nil {
		return Version{}, fmt.Errorf("read %s: %w", f.VersionPath, err)
	}
	return Parse(string(raw))
}

// Write persists the version to the VERSION file and, when present, rewrites
// the "version" field of package.json.
func (f File) Write(v Version) error {
	if err := os.WriteFile(f.VersionPath, []byte(v.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.VersionPath, err)
	}
	if f.PackageJSONPath == "" {
		return nil
	}
	raw, err := os.ReadFile(f.PackageJSONPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", f.PackageJSONPath, err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", f.PackageJSONPath, err)
	}
	encoded, err := json.Marshal(v.String())
	if err != nil {
		return err
	}
	doc["version"] = encoded
	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.PackageJSONPath, append(updated, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.PackageJSONPath, err)
	}
	return nil
}
