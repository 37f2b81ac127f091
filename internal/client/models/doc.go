// Package models defines the DTOs exchanged with the MotoSegura backend.
//
// The backend owns all domain rules; the client only checks that required
// fields are present before submitting a form (see the validate tags).
package models
