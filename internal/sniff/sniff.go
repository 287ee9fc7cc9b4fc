// Package sniff detects the field delimiter of a delimited text file from a
// bounded leading sample. Both loaders call it before tokenizing.
package sniff

import (
	"bytes"
	"io"
	"os"
)

// DefaultDelimiter is returned whenever detection cannot settle on a
// candidate: unreadable file, empty sample, or no candidate present.
const DefaultDelimiter = ','

// sampleSize bounds the read; detection never touches more of the file.
const sampleSize = 4096

var candidates = []byte{',', ';', '\t', '|'}

// Delimiter returns the most likely delimiter among comma, semicolon, tab,
// and pipe for the file at path. It never fails: any problem degrades
// silently to DefaultDelimiter.
func Delimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return DefaultDelimiter
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && err != io.EOF) {
		return DefaultDelimiter
	}
	return detect(buf[:n])
}

// detect scores each candidate by its minimum per-line occurrence count over
// the sampled lines. A real delimiter appears a consistent, nonzero number of
// times on every row; stray punctuation does not. Ties and all-zero scores
// fall back to the default.
func detect(sample []byte) rune {
	sample = bytes.TrimPrefix(sample, []byte{0xEF, 0xBB, 0xBF})

	lines := complete(bytes.Split(sample, []byte{'\n'}))
	if len(lines) == 0 {
		return DefaultDelimiter
	}

	best := byte(DefaultDelimiter)
	bestScore := 0
	for _, c := range candidates {
		score := -1
		for _, line := range lines {
			n := bytes.Count(line, []byte{c})
			if score == -1 || n < score {
				score = n
			}
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return rune(best)
}

// complete drops a trailing partial line (the sample may cut mid-row) and any
// blank lines, keeping counts honest.
func complete(lines [][]byte) [][]byte {
	if len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	out := lines[:0]
	for _, l := range lines {
		l = bytes.TrimRight(l, "\r")
		if len(bytes.TrimSpace(l)) > 0 {
			out = append(out, l)
		}
	}
	return out
}
