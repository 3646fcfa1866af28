package resolver

import "github.com/tranvictor/nftmeta/config"

// Sequence is a lazy, finite sequence of candidate token ids. When the
// collection's supply is known it is exactly offset..offset+supply-1. When
// it isn't, the sequence is open-ended: capped at a safety ceiling and cut
// short once enough consecutive misses suggest the id range is exhausted.
//
// A Sequence is consumed by a single goroutine; build a fresh one to
// restart. Enumerating the same interface twice always yields the same ids.
type Sequence struct {
	next uint64
	end  uint64 // exclusive
	open bool

	missCutoff int
	misses     int
}

// NewSequence builds the id sequence for a resolved contract interface.
func NewSequence(iface *ContractIface) *Sequence {
	if iface.HasTotalSupply {
		return &Sequence{
			next: iface.IDOffset,
			end:  iface.IDOffset + iface.TotalSupply,
		}
	}
	return newOpenSequence(iface.IDOffset)
}

// NewTemplateSequence builds the id sequence for a url-template source.
// supply 0 means unknown.
func NewTemplateSequence(start, supply uint64) *Sequence {
	if supply > 0 {
		return &Sequence{
			next: start,
			end:  start + supply,
		}
	}
	return newOpenSequence(start)
}

func newOpenSequence(start uint64) *Sequence {
	return &Sequence{
		next:       start,
		end:        start + config.OpenEndedCap,
		open:       true,
		missCutoff: config.MissCutoff,
	}
}

// Next returns the next candidate id. ok is false once the sequence is done.
func (s *Sequence) Next() (id uint64, ok bool) {
	if s.next >= s.end {
		return 0, false
	}
	if s.open && s.misses >= s.missCutoff {
		return 0, false
	}
	id = s.next
	s.next++
	return id, true
}

// RecordHit and RecordMiss feed fetch outcomes back into an open-ended
// sequence so it can stop after a run of consecutive not-found tokens.
func (s *Sequence) RecordHit() {
	s.misses = 0
}

func (s *Sequence) RecordMiss() {
	s.misses++
}

// Total returns the number of ids the sequence will yield, when known
// up front.
func (s *Sequence) Total() (uint64, bool) {
	if s.open {
		return 0, false
	}
	return s.end - s.next, true
}
