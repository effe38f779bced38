// Package qscript disassembles and assembles quest scripts: the versioned
// bytecode run by the quest engine of every client generation, wrapped in a
// small binary header and followed by a function table.
package qscript

import (
	"errors"
	"fmt"
	"strings"
)

// Version identifies one client release. Each has its own opcode
// availability, argument convention and header layout.
type Version uint8

const (
	PCPatch   Version = iota // 0
	BBPatch                  // 1
	DCNTE                    // 2
	DC112000                 // 3
	DCV1                     // 4
	DCV2                     // 5
	PCNTE                    // 6
	PCV2                     // 7
	GCNTE                    // 8
	GCV3                     // 9
	GCEp3NTE                 // 10
	GCEp3                    // 11
	XBV3                     // 12
	BBV4                     // 13

	NumVersions = BBV4 + 1
)

// ErrNoScripts is returned for versions that never carry quest scripts.
var ErrNoScripts = errors.New("version has no quest scripts")

var versionNames = [NumVersions]string{
	PCPatch:  "PC_PATCH",
	BBPatch:  "BB_PATCH",
	DCNTE:    "DC_NTE",
	DC112000: "DC_11_2000",
	DCV1:     "DC_V1",
	DCV2:     "DC_V2",
	PCNTE:    "PC_NTE",
	PCV2:     "PC_V2",
	GCNTE:    "GC_NTE",
	GCV3:     "GC_V3",
	GCEp3NTE: "GC_EP3_NTE",
	GCEp3:    "GC_EP3",
	XBV3:     "XB_V3",
	BBV4:     "BB_V4",
}

func (v Version) String() string {
	if v < NumVersions {
		return versionNames[v]
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// ParseVersion maps a canonical version name to its Version.
func ParseVersion(name string) (Version, error) {
	for v, n := range versionNames {
		if strings.EqualFold(n, name) {
			return Version(v), nil
		}
	}
	return 0, fmt.Errorf("unknown version %q", name)
}

// IsPatch reports whether v is a patch-server-only version.
func (v Version) IsPatch() bool { return v == PCPatch || v == BBPatch }

// IsV1 reports whether v belongs to the first (DC prototype and v1) family.
func (v Version) IsV1() bool { return v == DCNTE || v == DC112000 || v == DCV1 }

// IsV2 reports whether v belongs to the v2 family.
func (v Version) IsV2() bool { return v == DCV2 || v == PCNTE || v == PCV2 || v == GCNTE }

// IsV3 reports whether v belongs to the v3 (GameCube and Xbox) family.
func (v Version) IsV3() bool { return v == GCV3 || v == GCEp3NTE || v == GCEp3 || v == XBV3 }

// IsV4 reports whether v is Blue Burst.
func (v Version) IsV4() bool { return v == BBV4 }

// IsEp3 reports whether v is one of the Episode 3 releases.
func (v Version) IsEp3() bool { return v == GCEp3NTE || v == GCEp3 }

// UsesUTF16 reports whether strings for v are stored as UTF-16 units.
func (v Version) UsesUTF16() bool {
	switch v {
	case PCPatch, BBPatch, PCNTE, PCV2, BBV4:
		return true
	}
	return false
}

// UsesArgStack reports whether instructions flagged FlagArgs take their
// operands from preceding push instructions on v.
func (v Version) UsesArgStack() bool { return v.IsV3() || v.IsV4() }

func (v Version) mask() Flags { return 1 << v }

func checkVersion(v Version) error {
	if v >= NumVersions {
		return fmt.Errorf("invalid version %d", uint8(v))
	}
	if v.IsPatch() {
		return fmt.Errorf("%s: %w", v, ErrNoScripts)
	}
	return nil
}
