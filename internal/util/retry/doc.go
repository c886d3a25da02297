// Package retry provides exponential backoff retry logic for transient failures.
//
// [Do] retries an operation under a [Policy] of attempts, initial delay,
// maximum delay and an optional predicate selecting retryable errors. It
// is used for object storage calls while publishing descriptors.
package retry
