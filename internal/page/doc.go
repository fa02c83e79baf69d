// Package page holds the landing-page behaviors around the hero scene as
// plain state machines advanced by elapsed time. Hosts feed them input and
// ticks and render whatever they report.
package page
