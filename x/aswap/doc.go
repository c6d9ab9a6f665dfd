/*
Package aswap implements the storage of hash time-locked atomic swaps.

A swap holds a balance locked by a commitment: the sha256 hash of a secret
preimage. Funds can be claimed by the recipient by revealing the preimage
before the swap expires, or refunded to the source once it has expired.
Claiming and refunding are performed by the handlers using this package,
this package provides the swap entity, its keyed storage and the paginated
listing of active swap identifiers.

A swap lives in the store from its creation until exactly one terminal
event, claim or refund, removes it. A swap is never updated in place. The
handler layer is responsible for enforcing this lifecycle, the only write
path shipped here that enforces the create-once rule is the genesis import.

All swaps are stored under the "atomic_swap" namespace, keyed by a caller
chosen identifier. Identifiers are listed in ascending byte order, which
makes the listing resumable: pass the last identifier of a page as the
exclusive start of the next one.
*/
package aswap
