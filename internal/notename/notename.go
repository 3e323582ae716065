// Package notename extracts MIDI root notes from sample file names.
package notename

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// A note name at the end of the name, after a separator: C4, F#3, Bb-1.
	noteSuffix = regexp.MustCompile(`(?i)(?:^|[^a-z0-9#])([a-g])([#b]?)(-1|[0-9])$`)
	// A bare MIDI number after a separator: piano_60.
	numberSuffix = regexp.MustCompile(`[ _\-.]([0-9]{1,3})$`)
)

var semitones = map[byte]int{'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11}

// Parse finds the MIDI key named at the end of s, a file base name without
// extension. Note names use C4 = 60.
func Parse(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if m := noteSuffix.FindStringSubmatch(s); m != nil {
		key := semitones[strings.ToLower(m[1])[0]]
		switch strings.ToLower(m[2]) {
		case "#":
			key++
		case "b":
			key--
		}
		octave, _ := strconv.Atoi(m[3])
		key += (octave + 1) * 12
		if key < 0 || key > 127 {
			return 0, false
		}
		return key, true
	}
	if m := numberSuffix.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n <= 127 {
			return n, true
		}
	}
	return 0, false
}
