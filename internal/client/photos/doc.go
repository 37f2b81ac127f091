// Package photos opens the images uploaded as record photos. A reference
// is either a local path or an s3://bucket/key URL; Resolver dispatches on
// the scheme.
package photos
