// Package verification implements the partner verification state machine
// and its display overlay contract.
//
// Affiliate and merchant accounts carry an approval status that gates what
// their portal shows, not where they may navigate. The status lives in a
// small durable record per subject role; routes stay open and the portal
// renders a blocking overlay until the account is approved.
package verification
