// Package note implements the release note generation pipeline: raw change
// records are normalized, classified against an ordered rule list, merged
// when they describe the same logical change, and grouped into an ordered
// ReleaseNote. Every stage is a pure function over immutable values, so the
// pipeline is deterministic regardless of the order in which history was
// retrieved, and a single rule configuration can be shared across concurrent
// generation runs without synchronization.
package note
