// Package composite rebuilds one picture from a sequence of masked copies.
//
// Every source is conformed to a canonical size and RGB mode fixed by the
// first file, then folded into an accumulator that starts out black. At each
// coordinate the accumulator keeps the most recent source pixel that is
// neither pure black nor pure white:
//
//	select(acc, src) = src  if src ∉ {Black, White}
//	                 = acc  otherwise
//
// Because the fold always overwrites on a non-sentinel hit, the last
// contributing file wins where sources disagree. Stats.Conflicts counts how
// often that happened so callers can tell when ordering mattered.
//
// # Failure Model
//
// Only the canonical (first) file is fatal: if its header cannot be read,
// Canonicalize fails and nothing can be merged. Every later decode failure is
// recorded in Stats.Skipped and the merge continues with the next file.
package composite
