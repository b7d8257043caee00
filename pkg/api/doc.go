// Package api defines the request and response messages of the TravelSplit
// RPC services. Messages travel as JSON; field names are lowerCamelCase.
package api
