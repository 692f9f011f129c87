package models

import "time"

type ChallengeStatus string

const (
	ChallengeStatusUpcoming  ChallengeStatus = "upcoming"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusVoting    ChallengeStatus = "voting"
	ChallengeStatusCompleted ChallengeStatus = "completed"
)

// PhotoChallenge is a daily themed photo contest: submissions until the
// submission deadline, votes until the voting deadline, then winners.
type PhotoChallenge struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string          `gorm:"size:200;not null" json:"title"`
	Description        string          `gorm:"type:text" json:"description,omitempty"`
	ChallengeDate      time.Time       `gorm:"uniqueIndex;not null" json:"challenge_date"`
	SubmissionDeadline time.Time       `gorm:"not null" json:"submission_deadline"`
	VotingDeadline     time.Time       `gorm:"not null" json:"voting_deadline"`
	Status             ChallengeStatus `gorm:"size:20;default:'upcoming';not null" json:"status"`
	TotalSubmissions   int             `gorm:"default:0" json:"total_submissions"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// RefreshStatus rolls the phase forward based on the clock: active
// until the submission deadline, voting until the voting deadline,
// completed after.
func (p *PhotoChallenge) RefreshStatus(now time.Time) {
	switch {
	case now.Before(p.SubmissionDeadline):
		p.Status = ChallengeStatusActive
	case now.Before(p.VotingDeadline):
		p.Status = ChallengeStatusVoting
	default:
		p.Status = ChallengeStatusCompleted
	}
}

// CanSubmit reports whether submissions are still open.
func (p *PhotoChallenge) CanSubmit(now time.Time) bool {
	return p.Status == ChallengeStatusActive && !now.After(p.SubmissionDeadline)
}

// CanVote reports whether the voting window is open: after submissions
// close and before the voting deadline.
func (p *PhotoChallenge) CanVote(now time.Time) bool {
	return p.Status == ChallengeStatusVoting &&
		now.After(p.SubmissionDeadline) && !now.After(p.VotingDeadline)
}

func (p *PhotoChallenge) TimeUntilSubmissionDeadline(now time.Time) time.Duration {
	if remaining := p.SubmissionDeadline.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

func (p *PhotoChallenge) TimeUntilVotingDeadline(now time.Time) time.Duration {
	if remaining := p.VotingDeadline.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

type ChallengeSubmission struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID string    `gorm:"type:uuid;index:idx_challenge_user;not null" json:"challenge_id"`
	UserID      string    `gorm:"type:uuid;index:idx_challenge_user;not null" json:"user_id"`
	PhotoURL    string    `gorm:"type:text;not null" json:"photo_url"`
	Caption     string    `gorm:"size:255" json:"caption,omitempty"`
	VoteCount   int       `gorm:"default:0" json:"vote_count"`
	IsWinner    bool      `gorm:"default:false" json:"is_winner"`
	WinnerRank  *int      `json:"winner_rank,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *ChallengeSubmission) AddVote() {
	s.VoteCount++
}

// RemoveVote decrements the counter, never below zero.
func (s *ChallengeSubmission) RemoveVote() {
	if s.VoteCount > 0 {
		s.VoteCount--
	}
}

func (s *ChallengeSubmission) MarkWinner(rank int) {
	s.IsWinner = true
	r := rank
	s.WinnerRank = &r
}

// ChallengeVote records one user's vote on one submission.
type ChallengeVote struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID string    `gorm:"type:uuid;uniqueIndex:idx_submission_voter;not null" json:"submission_id"`
	UserID       string    `gorm:"type:uuid;uniqueIndex:idx_submission_voter;not null" json:"user_id"`
	VotedAt      time.Time `json:"voted_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
