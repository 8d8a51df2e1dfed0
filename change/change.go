// Package change fingerprints text and grids so callers can skip work when
// nothing changed.
//
//	var d change.Detector
//	if d.Observe(text) {
//	    // rebuild
//	}
//
// Fingerprints are 64-bit FNV-1a hashes. They are deterministic and order
// sensitive.
package change

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/tsawler/spatialtext/grid"
)

// Fingerprint hashes the UTF-8 bytes of s
func Fingerprint(s string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(s))
	return hasher.Sum64()
}

// GridFingerprint hashes a grid's dimensions and every cell, row by row
func GridFingerprint(g *grid.Grid) uint64 {
	hasher := fnv.New64a()
	var scratch [4]byte

	writeUint32 := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch[:], v)
		hasher.Write(scratch[:])
	}

	cells := g.Cells()
	writeUint32(uint32(len(cells)))
	for _, row := range cells {
		writeUint32(uint32(len(row)))
		for _, r := range row {
			writeUint32(uint32(r))
		}
	}
	return hasher.Sum64()
}

// Detector remembers the last observed fingerprint. The zero value is ready
// to use and treats the first observation as a change.
type Detector struct {
	last uint64
	seen bool
}

// Observe fingerprints s and reports whether it differs from the previous
// observation. The new fingerprint is stored either way.
func (d *Detector) Observe(s string) bool {
	return d.ObserveHash(Fingerprint(s))
}

// ObserveHash is Observe for a precomputed fingerprint
func (d *Detector) ObserveHash(h uint64) bool {
	changed := !d.seen || h != d.last
	d.last = h
	d.seen = true
	return changed
}

// Changed reports whether s differs from the last observation without
// storing it
func (d *Detector) Changed(s string) bool {
	return !d.seen || Fingerprint(s) != d.last
}

// Last returns the stored fingerprint and whether one exists
func (d *Detector) Last() (uint64, bool) {
	return d.last, d.seen
}

// Reset forgets the stored fingerprint
func (d *Detector) Reset() {
	d.last = 0
	d.seen = false
}
