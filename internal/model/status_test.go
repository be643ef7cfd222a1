package model

import "testing"

func TestTestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TestStatus
		expected bool
	}{
		{TestStatusIdle, false},
		{TestStatusTesting, true},
		{TestStatusSucceeded, false},
		{TestStatusFailed, false},
		{TestStatusCancelled, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TestStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTestStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TestStatus
		expected bool
	}{
		{TestStatusIdle, false},
		{TestStatusTesting, false},
		{TestStatusSucceeded, true},
		{TestStatusFailed, true},
		{TestStatusCancelled, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TestStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTestStatus_String(t *testing.T) {
	status := TestStatusCancelled
	expected := "Cancelled"
	result := status.String()

	if result != expected {
		t.Errorf("TestStatus.String() = %s, expected %s", result, expected)
	}
}
