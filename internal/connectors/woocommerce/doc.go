// Package woocommerce provides the HTTP transport for the WooCommerce REST API.
//
// The client lists catalog collections page by page, reading the page
// total from the X-WP-TotalPages response header. Credentials are sent as
// basic auth, or as consumer_key and consumer_secret query parameters when
// query string auth is enabled.
//
// Requests are throttled by a token bucket. A 429 response pauses the
// client for the duration named in Retry-After.
package woocommerce
