package models

import "time"

type Confession struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"-"` // author stays hidden
	Content      string    `gorm:"type:text;not null" json:"content"`
	LocationTag  string    `gorm:"size:100" json:"location_tag,omitempty"`
	Upvotes      int       `gorm:"default:0" json:"upvotes"`
	Downvotes    int       `gorm:"default:0" json:"downvotes"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	ViewCount    int       `gorm:"default:0" json:"view_count"`
	IsTrending   bool      `gorm:"default:false" json:"is_trending"`
	IsReported   bool      `gorm:"default:false" json:"is_reported"`
	IsApproved   bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Confession) NetVotes() int {
	return c.Upvotes - c.Downvotes
}

// PopularityScore weights engagement for the trending feed.
func (c *Confession) PopularityScore() int {
	return c.Upvotes*2 + c.CommentCount*3 + c.ViewCount - c.Downvotes
}

// ApplyVote adjusts the tallies for a new, changed, or retracted vote.
// previous is empty for a first vote; next is empty for a retraction.
func (c *Confession) ApplyVote(previous, next VoteType) {
	switch previous {
	case VoteTypeUpvote:
		c.Upvotes--
	case VoteTypeDownvote:
		c.Downvotes--
	}
	switch next {
	case VoteTypeUpvote:
		c.Upvotes++
	case VoteTypeDownvote:
		c.Downvotes++
	}
}

type VoteType string

const (
	VoteTypeUpvote   VoteType = "upvote"
	VoteTypeDownvote VoteType = "downvote"
)

type ConfessionVote struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ConfessionID string    `gorm:"type:uuid;index:idx_confession_voter;not null" json:"confession_id"`
	UserID       string    `gorm:"type:uuid;index:idx_confession_voter;not null" json:"user_id"`
	VoteType     VoteType  `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (v *ConfessionVote) IsUpvote() bool   { return v.VoteType == VoteTypeUpvote }
func (v *ConfessionVote) IsDownvote() bool { return v.VoteType == VoteTypeDownvote }
