// Package kernel contains shared value objects used across the fulfillment domain:
// entity identifiers (UUID) and human-facing short codes (order and tracking numbers).
//
// Everything in this package is immutable after construction and safe for
// concurrent use.
package kernel
