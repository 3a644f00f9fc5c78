// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../oauth/oauth_iface.go -destination mock_oauth/mock_oauth_iface.go
