// Package environment names the deployment environment the server runs in and
// carries it through request contexts.
package environment
