// Package review implements the submission controller.
//
// The Controller owns the reviewer's draft (raw paper id text plus five
// scores), turns a submit action into a store upsert, and drives the
// notification state machine from the outcome:
//
//   - paper id text that does not parse, or parses outside [1,150]:
//     Rejected(InvalidPaperID), nothing written
//   - the store rejects the scores: Rejected(InvalidScores)
//   - the store medium fails: Rejected(StorageFailure)
//   - otherwise: Accepted, and the draft resets to empty text and zero
//     scores
//
// Every Accepted enters notify.Success and every Rejected enters
// notify.Error, whatever the reason. A rejected draft is left exactly as
// the reviewer entered it so it can be corrected.
//
// The host calls Records and Notification once per render tick. Records
// keeps the last successfully loaded list when the store cannot be read.
//
// A Controller is not safe for concurrent use.
package review
