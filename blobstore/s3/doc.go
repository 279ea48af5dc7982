// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	p := snapgo.New[*lexical.Index](lexical.Engine{}, snapgo.WithStore(store))
//
// Uploads go through the SDK upload manager, so large snapshots are sent
// as multipart uploads. Listing paginates automatically.
package s3
