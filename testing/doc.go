// Package testing provides test utilities for the Vigil library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for integration testing. It follows Go's convention
// of providing testing utilities in a dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single in-process NATS server
//   - NewTestLogger: Logger that writes through testing.T
//   - CapturePublisher: Publisher that records escalations for assertions
//
// Example usage:
//
//	import (
//	    "testing"
//	    vigiltest "github.com/arloliu/vigil/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := vigiltest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
