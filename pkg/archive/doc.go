// Package archive stores tree snapshots as named blobs.
//
// Two stores are provided: DirStore keeps one file per snapshot in a local
// directory, and S3Store keeps one object per snapshot under a bucket
// prefix. SaveSnapshot and LoadSnapshot encode snapshots as JSON on top of
// any Store.
//
// Missing snapshots are reported as E161 and every other store failure as
// E160; use errors.HasCode to tell them apart.
package archive
