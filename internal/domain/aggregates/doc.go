// Package aggregates defines the write boundaries of the learning domain: course
// authoring, enrollment and completion.
//
// Each contract owns its transaction. Implementations live in internal/data/aggregates
// and report failures as *Error values carrying an ErrorCode.
package aggregates
