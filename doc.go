// Package vobizbroker implements the call broker service which sits between
// the Vobiz telephony provider, the media-streaming bridge and the
// conversational agent.
//
// The service provides:
//   - Outbound call initiation through the Vobiz control API
//   - Call session tracking with a compare-and-set state machine
//   - Provider webhook handling (answer, hangup, recording callbacks)
//   - Operator-initiated transfer of a live call to a human agent
//   - Background retrieval of finished call recordings
package vobizbroker
