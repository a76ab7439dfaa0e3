// Package util holds the shared helpers: export key derivation, XDG path
// resolution, hashtag parsing, and logging glue.
package util

import "log"

// LogError logs err under a short label and swallows it. For failures that
// should not interrupt the UI loop, like recording the last export path.
func LogError(label string, err error) {
	if err != nil {
		log.Printf("%s: %v", label, err)
	}
}

// MustSucceed exits on err. Only for startup steps with nothing to unwind.
func MustSucceed(label string, err error) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
