// Package services implements the catalog sourcing core.
//
// The pipeline fetches every configured collection page by page, expands
// product variations, resolves media through the media cache, links
// products to categories, tags, related and grouped products, and finally
// normalises records into digested nodes handed to the node sink.
//
// Services depend only on domain and the port interfaces; every adapter,
// including the logger, is passed in by the caller.
package services
