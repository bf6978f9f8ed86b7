// Package record defines the scored-paper record and its validity rules.
//
// A ScoreRecord pairs a paper id with exactly five integer scores. The
// valid domain is fixed:
//
//   - paper id: [MinPaperID, MaxPaperID] = [1, 150]
//   - each score: [MinScore, MaxScore] = [0, 10]
//
// Validation failures are reported as *ValidationError and match
// ErrInvalid via errors.Is, so callers can tell bad input apart from
// storage problems without inspecting messages.
package record
