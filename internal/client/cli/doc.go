// Package cli provides the interactive repslog command-line client.
//
// It wires configuration, the local journal database, the GraphQL gateway,
// the S3 blob store and the entry, property and category services, then runs
// a REPL over them. On start it restores the cached session (or signs in
// with the configured token) and loads all collections.
//
// Commands:
//   - login / logout (paste an ID token, read without echo)
//   - properties, addproperty, editproperty, deleteproperty
//   - categories, addcategory, renamecategory, deletecategory
//   - entries, addentry, editentry, deleteentry
//   - photos (download links of an entry's photos)
//   - sync, sagas, resume
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
