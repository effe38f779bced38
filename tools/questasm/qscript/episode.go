package qscript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Episode is a game content partition.
type Episode uint8

const (
	EpisodeNone Episode = iota
	Episode1
	Episode2
	Episode3
	Episode4
)

func (e Episode) String() string {
	if e >= Episode1 && e <= Episode4 {
		return "Episode" + strconv.Itoa(int(e))
	}
	return "EpisodeNone"
}

// ParseEpisode accepts "Episode1".."Episode4" (or "ep1".."ep4").
func ParseEpisode(s string) (Episode, error) {
	t := strings.ToLower(s)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "episode"), "ep")
	if n, err := strconv.Atoi(t); err == nil && n >= 1 && n <= 4 {
		return Episode(n), nil
	}
	return EpisodeNone, fmt.Errorf("unknown episode %q", s)
}

// ErrInconsistentEpisode is returned when a script's entry function
// declares more than one episode.
var ErrInconsistentEpisode = errors.New("inconsistent episode")

// episodeFromValue maps a set_episode argument to an Episode.
func episodeFromValue(n uint32) (Episode, error) {
	switch n {
	case 0:
		return Episode1, nil
	case 1:
		return Episode2, nil
	case 2:
		return Episode4, nil
	}
	return EpisodeNone, fmt.Errorf("invalid episode value %d", n)
}

// EpisodeFromHeader interprets a header's episode byte for version v.
// Layouts without an episode field always mean Episode1.
func EpisodeFromHeader(v Version, b uint8) Episode {
	if v.IsEp3() {
		return Episode3
	}
	if !layouts[LayoutFor(v)].hasEpisode {
		return Episode1
	}
	switch {
	case b == 1:
		return Episode2
	case b == 2 && v == BBV4:
		return Episode4
	}
	return Episode1
}

// headerEpisodeByte is the inverse of EpisodeFromHeader for the episodes a
// header can declare.
func headerEpisodeByte(v Version, e Episode) (uint8, bool) {
	switch {
	case e == Episode1:
		return 0, true
	case e == Episode2:
		return 1, true
	case e == Episode4 && v == BBV4:
		return 2, true
	}
	return 0, false
}

// FindEpisode determines a script's episode. It decodes only the entry
// function (label 0) up to its first return; an episode-marking
// instruction found there overrides the header.
func FindEpisode(data []byte, v Version) (Episode, error) {
	h, err := DecodeHeader(data, v)
	if err != nil {
		return EpisodeNone, err
	}
	fallback := EpisodeFromHeader(v, h.Episode)

	code, ft, err := splitSegments(data, h)
	if err != nil {
		return EpisodeNone, err
	}
	if len(ft) == 0 || ft[0] >= uint32(len(code)) {
		return fallback, nil
	}

	found := map[Episode]struct{}{}
	var first Episode
	r := &reader{data: code, pos: int(ft[0])}
	enc := TextEncoding(v, h.Language)
	for !r.eof() {
		start := r.pos
		op, err := r.readOpcode()
		if err != nil {
			return EpisodeNone, err
		}
		def, ok := LookupCode(op, v)
		if !ok {
			return EpisodeNone, fmt.Errorf("unknown opcode %04X at %04X", op, start)
		}
		if !def.UsesArgStack(v) {
			for _, arg := range def.Args {
				op, err := r.readOperand(arg, enc)
				if err != nil {
					return EpisodeNone, fmt.Errorf("instruction at %04X: %w", start, err)
				}
				if def.Flags&FlagEpisode == 0 || arg.Kind != Int32 {
					continue
				}
				ep, err := episodeFromValue(op.Value)
				if err != nil {
					return EpisodeNone, fmt.Errorf("instruction at %04X: %w", start, err)
				}
				if len(found) == 0 {
					first = ep
				}
				found[ep] = struct{}{}
			}
		}
		if def.IsReturn() {
			break
		}
	}

	switch len(found) {
	case 0:
		return fallback, nil
	case 1:
		return first, nil
	}
	return EpisodeNone, fmt.Errorf("%w: entry function sets %d different episodes", ErrInconsistentEpisode, len(found))
}
