// Package countdown computes the time left until a capsule unlocks and owns
// the recurring recomputation of that value.
//
// Remaining time is always derived from target-now; it is never decremented
// in place. Once the difference is zero or negative the result is the
// terminal Unlocked state and no negative units are ever reported.
package countdown
