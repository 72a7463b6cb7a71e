// Package aggregates implements the learning write boundaries declared in
// internal/domain/aggregates.
//
// Implementations compose table-level repos from internal/data/repos and own the
// transaction for each write. Completion writes serialize per learner and course on the
// enrollment row lock.
package aggregates
