// Package publish exports rendered pages to a destination.
//
// Export renders each path through a PageRenderer (a *site.Server) and
// hands the documents to a Publisher. DirPublisher writes a directory tree
// that any static file server can serve; S3Publisher uploads the same
// layout to a bucket.
//
//	pub := publish.NewS3Publisher(publish.NewS3Client(publish.S3Config{
//	    Region: "eu-west-1",
//	}), "my-bucket", "site/")
//	report, err := publish.Export(ctx, srv, publish.StaticPaths(routes), pub)
package publish
