// Package ociapi is the transport shared by the generated service packages.
//
// The service packages (certificatesmanagement, devops, resourcemanager) are
// generated from the public API definitions and only declare model
// descriptors and operations. Every operation is described as a Call and
// executed through HttpClient.Invoke, which encodes request bodies and decodes
// responses with the model package.
//
// Differences to the published API definitions that the generator has to
// account for:
//
// - Delete operations of certificatesmanagement return 204 with an empty body,
// the API definition says 200.
// - ListStacks returns a bare JSON array, other list operations wrap the items
// in an object under "items". Both are accepted.
//
// Composite operations, which chain a mutating call with a wait for a lifecycle
// state, live next to each client and are built on the waiter package.
package ociapi
