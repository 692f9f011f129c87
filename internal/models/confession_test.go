package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfessionScores(t *testing.T) {
	c := Confession{Upvotes: 10, Downvotes: 3, CommentCount: 4, ViewCount: 50}

	assert.Equal(t, 7, c.NetVotes())
	// 10*2 + 4*3 + 50 - 3
	assert.Equal(t, 79, c.PopularityScore())
}

func TestApplyVote(t *testing.T) {
	tests := []struct {
		name           string
		previous, next VoteType
		wantUp, wantDn int
	}{
		{"first upvote", "", VoteTypeUpvote, 6, 2},
		{"first downvote", "", VoteTypeDownvote, 5, 3},
		{"switch up to down", VoteTypeUpvote, VoteTypeDownvote, 4, 3},
		{"switch down to up", VoteTypeDownvote, VoteTypeUpvote, 6, 1},
		{"retract upvote", VoteTypeUpvote, "", 4, 2},
		{"retract downvote", VoteTypeDownvote, "", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Confession{Upvotes: 5, Downvotes: 2}
			c.ApplyVote(tt.previous, tt.next)
			assert.Equal(t, tt.wantUp, c.Upvotes)
			assert.Equal(t, tt.wantDn, c.Downvotes)
		})
	}
}
