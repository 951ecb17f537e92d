// Package schema defines the JSON wire types of the portal REST API.
package schema
