package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditDistance(testInstance *testing.T) {
	testCases := []struct {
		first    string
		second   string
		expected int
	}{
		{first: "", second: "", expected: 0},
		{first: "", second: "abc", expected: 3},
		{first: "test", second: "test", expected: 0},
		{first: "tset", second: "test", expected: 1},
		{first: "wrold", second: "world", expected: 1},
		{first: "kitten", second: "sitting", expected: 3},
		{first: "ca", second: "abc", expected: 3},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.first+"_"+testCase.second, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, editDistance(testCase.first, testCase.second))
			require.Equal(testInstance, testCase.expected, editDistance(testCase.second, testCase.first))
		})
	}
}
