// Package sagas journals multi-step entry operations in the local database.
//
// Creating or updating an entry with photos takes up to three remote calls:
// the entry mutation, one upload per photo and the image attach mutation.
// Nothing spans them transactionally, so each step is recorded here. A saga
// that stopped after its uploads can be finished later by attaching the
// recorded keys.
//
// Steps move forward only: started, created, uploaded, attached, done.
// A failure keeps the step and stores the error text.
package sagas
