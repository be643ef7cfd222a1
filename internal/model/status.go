package model

// TestStatus represents the state of a connection test
type TestStatus string

const (
	// TestStatusIdle means no test has been started since the form was opened
	TestStatusIdle TestStatus = "Idle"

	// TestStatusTesting means a test is in flight
	TestStatusTesting TestStatus = "Testing"

	// TestStatusSucceeded means the last test reached the database
	TestStatusSucceeded TestStatus = "Succeeded"

	// TestStatusFailed means the last test could not reach the database
	TestStatusFailed TestStatus = "Failed"

	// TestStatusCancelled means the last test was aborted before it finished
	TestStatusCancelled TestStatus = "Cancelled"
)

// String returns the string representation of TestStatus
func (ts TestStatus) String() string {
	return string(ts)
}

// IsActive returns true while a test is running
func (ts TestStatus) IsActive() bool {
	return ts == TestStatusTesting
}

// IsFinished returns true if the test ended (succeeded, failed, or cancelled)
func (ts TestStatus) IsFinished() bool {
	return ts == TestStatusSucceeded || ts == TestStatusFailed || ts == TestStatusCancelled
}
