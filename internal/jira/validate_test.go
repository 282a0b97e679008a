package jira

import "testing"

func TestValidateProjectKey(t *testing.T) {
	t.Parallel()

	valid := []string{"PROJ", "A", "AB2", "MY_PROJECT", "X9"}
	for _, key := range valid {
		if !ValidateProjectKey(key) {
			t.Errorf("expected %q to be valid", key)
		}
	}

	invalid := []string{"", "proj", "1PROJ", "PROJ-1", "PROJ KEY", "PROJ;DROP", "_PROJ"}
	for _, key := range invalid {
		if ValidateProjectKey(key) {
			t.Errorf("expected %q to be invalid", key)
		}
	}
}

func TestValidateIssueKey(t *testing.T) {
	t.Parallel()

	valid := []string{"PROJ-1", "A-123", "MY_PROJECT-99", "X9-1000"}
	for _, key := range valid {
		if !ValidateIssueKey(key) {
			t.Errorf("expected %q to be valid", key)
		}
	}

	invalid := []string{"", "PROJ", "proj-1", "PROJ-", "-1", "PROJ-1x", "PROJ 1", "1-1"}
	for _, key := range invalid {
		if ValidateIssueKey(key) {
			t.Errorf("expected %q to be invalid", key)
		}
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		limit    int
		fallback int
		want     int
	}{
		{0, 10, 10},
		{-5, 10, 10},
		{1, 10, 1},
		{100, 10, 100},
		{101, 10, 100},
		{250, 50, 100},
	}

	for _, tc := range cases {
		if got := clampLimit(tc.limit, tc.fallback); got != tc.want {
			t.Errorf("clampLimit(%d, %d) = %d, want %d", tc.limit, tc.fallback, got, tc.want)
		}
	}
}
