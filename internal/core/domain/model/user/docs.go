// Package user contains the User aggregate and the Role every request is
// authorized with.
//
// A User is identified by a unique e-mail. Its Role is changed only by an
// ADMIN; profile fields and credentials are changed only by the user.
//
// Actor is the authenticated caller passed explicitly to every command and
// query. It is resolved from the store on each request so a role change takes
// effect immediately.
package user
