// Package dispatch gates outbound transactional mail. Every send first
// consults the bounce registry; suppressed recipients are refused before
// any transport call is made. There is no retry logic here: delivery
// retries belong to the provider.
package dispatch
