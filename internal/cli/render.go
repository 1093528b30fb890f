package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/models"
)

const timeLayout = "2006-01-02 15:04"

var stickerIcons = map[string]string{
	models.StickerHeart:  "💖",
	models.StickerStar:   "⭐",
	models.StickerRibbon: "🎀",
	models.StickerMelody: "🐰",
}

var visibilityIcons = map[models.Visibility]string{
	models.VisibilityPrivate: "🔒 private",
	models.VisibilityPublic:  "🌍 public",
	models.VisibilityGroup:   "👭 group",
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(timeLayout)
}

// entryHeader is the one-line summary used by the feed and journal views.
func entryHeader(e models.DiaryEntry, groupName string) string {
	vis := visibilityIcons[e.Visibility]
	if e.Visibility == models.VisibilityGroup && groupName != "" {
		vis += " · " + groupName
	}
	return fmt.Sprintf("[%s] %s · %s · %s", e.ID, e.UserName, vis, formatMillis(e.Timestamp))
}

func stickerLine(ds []models.Decoration) string {
	if len(ds) == 0 {
		return ""
	}
	icons := make([]string, 0, len(ds))
	for _, d := range ds {
		icon, ok := stickerIcons[d.Type]
		if !ok {
			icon = d.Type
		}
		icons = append(icons, icon)
	}
	return strings.Join(icons, " ")
}

// formatEntry renders an entry. full adds the comments.
func formatEntry(e models.DiaryEntry, groupName, viewerID string, full bool) string {
	var b strings.Builder

	b.WriteString(entryHeader(e, groupName))
	b.WriteByte('\n')
	for _, line := range strings.Split(e.Text, "\n") {
		if line != "" {
			b.WriteString("  " + line + "\n")
		}
	}
	if e.ImageURL != "" {
		b.WriteString("  🖼  " + e.ImageURL + "\n")
	}
	if s := stickerLine(e.Decorations); s != "" {
		b.WriteString("  " + s + "\n")
	}

	heart := "♡"
	if e.LikedBy(viewerID) {
		heart = "♥"
	}
	fmt.Fprintf(&b, "  %s %d · 💬 %d\n", heart, len(e.Likes), len(e.Comments))

	if full {
		for _, c := range e.Comments {
			fmt.Fprintf(&b, "    %s (%s): %s\n", c.UserName, formatMillis(c.Timestamp), c.Text)
		}
	}
	return b.String()
}

func formatGroup(g models.Group) string {
	kind := "public"
	if !g.IsPublic {
		kind = "private"
	}
	return fmt.Sprintf("[%s] %s · %s · %d members", g.ID, g.Name, kind, len(g.Members))
}

func formatUser(u models.UserProfile) string {
	s := fmt.Sprintf("[%s] %s", u.ID, u.Username)
	if u.IsAdmin {
		s += " ★admin"
	}
	if u.LastActive != "" {
		s += " · " + u.LastActive
	}
	return s
}

func formatMessage(m models.ChatMessage) string {
	return fmt.Sprintf("%s %s: %s", time.UnixMilli(m.Timestamp).Format("15:04"), m.UserName, m.Text)
}
