package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func challengeFixture() PhotoChallenge {
	return PhotoChallenge{
		Title:              "Best campus sunset",
		ChallengeDate:      noon,
		SubmissionDeadline: noon.Add(6 * time.Hour),
		VotingDeadline:     noon.Add(12 * time.Hour),
		Status:             ChallengeStatusUpcoming,
	}
}

func TestChallengeRefreshStatus(t *testing.T) {
	ch := challengeFixture()

	ch.RefreshStatus(noon)
	assert.Equal(t, ChallengeStatusActive, ch.Status)

	ch.RefreshStatus(noon.Add(8 * time.Hour))
	assert.Equal(t, ChallengeStatusVoting, ch.Status)

	ch.RefreshStatus(noon.Add(13 * time.Hour))
	assert.Equal(t, ChallengeStatusCompleted, ch.Status)
}

func TestChallengeWindows(t *testing.T) {
	ch := challengeFixture()

	ch.RefreshStatus(noon)
	assert.True(t, ch.CanSubmit(noon))
	assert.False(t, ch.CanVote(noon), "voting closed while submissions run")

	ch.RefreshStatus(noon.Add(8 * time.Hour))
	assert.False(t, ch.CanSubmit(noon.Add(8*time.Hour)))
	assert.True(t, ch.CanVote(noon.Add(8*time.Hour)))

	ch.RefreshStatus(noon.Add(13 * time.Hour))
	assert.False(t, ch.CanVote(noon.Add(13*time.Hour)))
}

func TestChallengeDeadlineCountdowns(t *testing.T) {
	ch := challengeFixture()

	assert.Equal(t, 6*time.Hour, ch.TimeUntilSubmissionDeadline(noon))
	assert.Equal(t, 12*time.Hour, ch.TimeUntilVotingDeadline(noon))
	assert.Equal(t, time.Duration(0), ch.TimeUntilSubmissionDeadline(noon.Add(7*time.Hour)))
}

func TestSubmissionVoteCounter(t *testing.T) {
	s := ChallengeSubmission{}

	s.AddVote()
	s.AddVote()
	assert.Equal(t, 2, s.VoteCount)

	s.RemoveVote()
	assert.Equal(t, 1, s.VoteCount)

	s.RemoveVote()
	s.RemoveVote()
	assert.Equal(t, 0, s.VoteCount, "never below zero")
}

func TestSubmissionMarkWinner(t *testing.T) {
	s := ChallengeSubmission{VoteCount: 14}
	s.MarkWinner(1)

	assert.True(t, s.IsWinner)
	assert.Equal(t, 1, *s.WinnerRank)
}
