// Package services synchronizes the local entity store with the remote
// backend.
//
// Every operation follows the same shape: validate locally, call the data
// gateway (and the blob store for photos), then reconcile the store from the
// server's answer. Nothing is written to the store speculatively. Validation
// failures never touch the network.
//
// Errors are classified with the common package: ErrValidation for local
// preconditions, ErrRemote for gateway failures and ErrStorage for blob
// failures. Only the category bootstrap loop and the blob cleanup after an
// entry delete swallow errors, and both log them.
package services
