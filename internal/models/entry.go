package models

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/dmitrijs2005/melodydiary/internal/common"
)

// Visibility controls which viewers may see a diary entry.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
	VisibilityGroup   Visibility = "group"
)

// ParseVisibility accepts the three visibility names, case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case VisibilityPrivate, VisibilityPublic, VisibilityGroup:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidVisibility, s)
	}
}

// Sticker type tags.
const (
	StickerHeart  = "heart"
	StickerStar   = "star"
	StickerRibbon = "ribbon"
	StickerMelody = "melody"
)

// Decoration is a sticker placed on an entry. X and Y are percentages of
// the entry canvas.
type Decoration struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// NewDecoration places a sticker at a random spot away from the canvas edges.
func NewDecoration(stickerType, label string) Decoration {
	return Decoration{
		ID:    NewID(),
		Type:  stickerType,
		Label: label,
		X:     10 + rand.Float64()*80,
		Y:     10 + rand.Float64()*80,
	}
}

// Normalize fills a missing id and clamps the position into the canvas.
func (d Decoration) Normalize() Decoration {
	if d.ID == "" {
		d.ID = NewID()
	}
	d.X = clampPercent(d.X)
	d.Y = clampPercent(d.Y)
	return d
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

// Comment is an append-only remark on an entry. Author fields are a
// snapshot taken when the comment was written.
type Comment struct {
	ID         string `json:"id"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userPfp"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// DiaryEntry is a single post. UserName and UserAvatar are a snapshot of the
// owner at posting time and are not updated by later profile edits.
type DiaryEntry struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	UserName    string       `json:"userName"`
	UserAvatar  string       `json:"userPfp"`
	Text        string       `json:"text"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Visibility  Visibility   `json:"visibility"`
	GroupID     string       `json:"groupId,omitempty"`
	Timestamp   int64        `json:"timestamp"`
	Decorations []Decoration `json:"decorations"`
	Likes       []string     `json:"likes"`
	Comments    []Comment    `json:"comments"`
}

// Clone returns a copy that shares no slices with e.
func (e DiaryEntry) Clone() DiaryEntry {
	e.Decorations = slices.Clone(e.Decorations)
	e.Likes = slices.Clone(e.Likes)
	e.Comments = slices.Clone(e.Comments)
	return e
}

func (e DiaryEntry) LikedBy(userID string) bool {
	return slices.Contains(e.Likes, userID)
}

// VisibleTo reports whether viewerID, a member of viewerGroups, may see e.
func (e DiaryEntry) VisibleTo(viewerID string, viewerGroups []string) bool {
	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityPrivate:
		return e.UserID == viewerID
	case VisibilityGroup:
		return e.GroupID != "" && slices.Contains(viewerGroups, e.GroupID)
	default:
		return false
	}
}
