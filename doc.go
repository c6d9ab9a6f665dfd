/*
Package htlc defines the common interfaces of the hash time-locked swap
registry, as well as implementations of the simpler components that are
shared by all other packages.

The KVStore and Iterator interfaces describe the ordered key-value storage
every backend (see the store package) must provide. BlockInfo is the deadline
clock handed over by the host chain: it declares the current block height and
block time. Expiration is the deadline of a swap expressed in one of those
units, and Address identifies an account.

Nothing in this package keeps global mutable state. Storage is always passed
explicitly as an argument.
*/
package htlc
