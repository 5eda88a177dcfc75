// Package connectors holds the catalog transports. Each connector
// implements driven.CatalogTransport for one upstream API.
package connectors
