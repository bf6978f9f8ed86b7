// Package harness runs reviewer scenarios against the submission
// controller and records a deterministic trace.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: reject_then_accept
//	description: "Out of range id is rejected, a valid one is stored"
//	display_duration: 1s
//	steps:
//	  - submit:
//	      paper_id: "151"
//	      scores: [1, 1, 1, 1, 1]
//	    expect:
//	      outcome: rejected
//	      reason: invalid_paper_id
//	      notification: error
//	      draft_cleared: false
//	  - advance: 300ms
//	  - tick: true
//	    expect:
//	      notification: error
//	assertions:
//	  - type: record
//	    paper_id: 42
//	    scores: [10, 10, 10, 10, 10]
//	  - type: record_count
//	    count: 1
//	  - type: absent
//	    paper_id: 151
//
// Each step is exactly one of submit, advance or tick. A submit step sets
// the draft verbatim and submits it. An advance step moves the fake clock.
// A tick step reloads the record list and polls the notification, the way
// a host does once per frame.
//
// # Assertion Types
//
//   - record: the stored scores for paper_id equal scores
//   - record_count: the store holds exactly count records
//   - absent: no record exists for paper_id
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory SQLite database, a fake clock frozen at
// testutil.Epoch and sequential submission ids, so the same scenario always
// produces the same trace. MarshalTrace renders the trace as RFC 8785
// canonical JSON for golden comparison.
package harness
