// Package services contains stateless domain services that implement business
// logic spanning the order aggregate and the fulfillment timing policy.
package services
