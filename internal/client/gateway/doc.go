// Package gateway is the remote data boundary of the repslog client.
//
// # Overview
//
//  1. Gateway is the transport-agnostic contract: raw Query/Mutate over a
//     GraphQL document plus typed helpers for the generated list/get and
//     property CRUD operations.
//  2. GraphQLGateway implements it over HTTP with machinebox/graphql. An
//     http.RoundTripper injects the session token into the Authorization
//     header and maps 401/403 responses to common.ErrUnauthorized.
//  3. documents.go holds every GraphQL document the client sends. Entry and
//     category mutations select only scalar fields so the API never tries to
//     resolve relationships in a mutation response.
//
// # Decode paths
//
// Query and Mutate return the JSON found under decodePath inside "data".
// Paths are dotted ("listEntries.items"). A missing or null value yields
// common.ErrNotFound.
package gateway
