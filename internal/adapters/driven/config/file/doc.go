// Package file provides file-based configuration adapters.
//
// The catalog source is configured by a TOML file, by default
// ~/.wcgraph/config.toml:
//
//	api = "shop.example.com"
//	https = true
//	fields = ["products", "products/categories", "products/tags"]
//
//	[api_keys]
//	consumer_key = "ck_..."
//	consumer_secret = "cs_..."
//
// Optional keys: api_version, per_page, wp_api_prefix, query_string_auth,
// port, encoding, category, and the [transport], [media] and [pipeline]
// tables. Credentials may also come from WCGRAPH_CONSUMER_KEY and
// WCGRAPH_CONSUMER_SECRET.
package file
