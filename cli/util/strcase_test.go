package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseConversion(t *testing.T) {
	testCases := []struct {
		in     string
		snake  string
		pascal string
	}{
		{"UserProfile", "user_profile", "UserProfile"},
		{"user-profile", "user_profile", "UserProfile"},
		{"user_profile", "user_profile", "UserProfile"},
		{"testapp", "testapp", "Testapp"},
		{"TestApp2", "test_app2", "TestApp2"},
		{"My App", "my_app", "MyApp"},
		{"", "", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.snake, SnakeCase(tc.in), tc.in)
		assert.Equal(t, tc.pascal, PascalCase(tc.in), tc.in)
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("User"))
	assert.True(t, IsIdentifier("_user2"))
	assert.False(t, IsIdentifier("2user"))
	assert.False(t, IsIdentifier("user-profile"))
	assert.False(t, IsIdentifier(""))
}
