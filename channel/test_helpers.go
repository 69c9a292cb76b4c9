package channel

import "github.com/stretchr/testify/mock"

// MatchChannel creates a custom matcher for channel arguments in mocks
func MatchChannel(matcher func(Channel) bool) interface{} {
	return mock.MatchedBy(matcher)
}
