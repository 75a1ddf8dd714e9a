// Package sink chooses the output pipeline for the resolved
// environment.
//
// Development processes write JSON records with numeric levels into the
// pretty renderer, which prints condensed coloured lines. Production
// processes write one JSON object per line with three letter level
// codes. Browser builds get a minimal JSON record. An optional file
// destination is added next to the console in every variant.
//
// Select never fails. Problems building a variant are returned as
// notes and the nearest working pipeline is used instead.
package sink
