package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/models"
	"github.com/dmitrijs2005/melodydiary/internal/services"
)

var stickerLabels = map[string]string{
	models.StickerMelody: "Melody",
}

// parseStickers turns "heart, star ribbon" into decorations. Unknown tags
// are skipped.
func parseStickers(s string) []models.Decoration {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' '
	})

	var out []models.Decoration
	for _, f := range fields {
		if _, ok := stickerIcons[f]; !ok {
			continue
		}
		out = append(out, models.NewDecoration(f, stickerLabels[f]))
	}
	return out
}

// Post walks through the editor: text, the optional "make it cuter" pass,
// image, stickers, visibility and, for group posts, the group.
func (a *App) Post(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Dear diary... ✏️", a.out)
	if err != nil {
		return a.report(ctx, "post", err)
	}

	if text != "" && GetConfirm(a.reader, "Make it cuter with magic? ✨", a.out) {
		text = a.enhance(ctx, text)
		a.printf("✨ %s\n", text)
	}

	image, err := GetSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		return a.report(ctx, "post", err)
	}

	stickers, err := GetSimpleText(a.reader, "Stickers (heart, star, ribbon, melody; optional)", a.out)
	if err != nil {
		return a.report(ctx, "post", err)
	}

	vis, err := GetSimpleText(a.reader, "Who can see it? private / public / group [private]", a.out)
	if err != nil {
		return a.report(ctx, "post", err)
	}
	if vis == "" {
		vis = string(models.VisibilityPrivate)
	}

	in := services.PostInput{
		Text:        text,
		Visibility:  models.Visibility(strings.ToLower(vis)),
		ImageURL:    image,
		Decorations: parseStickers(stickers),
	}

	if in.Visibility == models.VisibilityGroup {
		me, _ := a.profiles.Current()
		for _, g := range a.social.MyGroups(me.ID) {
			a.println(" ", formatGroup(g))
		}
		if in.GroupID, err = GetSimpleText(a.reader, "Group id", a.out); err != nil {
			return a.report(ctx, "post", err)
		}
	}

	e, err := a.entries.Post(ctx, in)
	if err != nil {
		return a.report(ctx, "post", err)
	}

	a.printf("Posted! 🎀 [%s]\n", e.ID)
	return nil
}

// enhance runs the text enhancer under the configured timeout. Failures
// leave the text as it was.
func (a *App) enhance(ctx context.Context, text string) string {
	timeout := a.config.EnhanceTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a.println("Sprinkling magic... 🪄")
	return a.enhancer.Enhance(ctx, text)
}

func (a *App) Feed(_ context.Context) error {
	me, _ := a.profiles.Current()
	a.printEntries(a.entries.Feed(me.ID, a.social.GroupIDs(me.ID)), me.ID, "Community Moments ✨", "Nothing here yet. Type 'post' to write the first entry!")
	return nil
}

func (a *App) Mine(_ context.Context) error {
	me, _ := a.profiles.Current()
	a.printEntries(a.entries.Mine(me.ID), me.ID, "My Secret Diary 🎀", "Your journal is empty. Type 'post' to write something!")
	return nil
}

func (a *App) printEntries(entries []models.DiaryEntry, viewerID, title, empty string) {
	a.println(title)
	if len(entries) == 0 {
		a.println(empty)
		return
	}
	for _, e := range entries {
		a.println(formatEntry(e, a.groupName(e.GroupID), viewerID, false))
	}
}

// visibleEntry finds an entry the active user is allowed to see.
func (a *App) visibleEntry(entryID string) (models.DiaryEntry, error) {
	me, _ := a.profiles.Current()
	e, ok := a.entries.Get(entryID)
	if !ok || !e.VisibleTo(me.ID, a.social.GroupIDs(me.ID)) {
		return models.DiaryEntry{}, common.ErrNotFound
	}
	return e, nil
}

func (a *App) Show(ctx context.Context, entryID string) error {
	e, err := a.visibleEntry(entryID)
	if err != nil {
		return a.report(ctx, "show", err)
	}
	me, _ := a.profiles.Current()
	a.println(formatEntry(e, a.groupName(e.GroupID), me.ID, true))
	return nil
}

func (a *App) Like(ctx context.Context, entryID string) error {
	if _, err := a.visibleEntry(entryID); err != nil {
		return a.report(ctx, "like", err)
	}
	me, _ := a.profiles.Current()

	liked, err := a.entries.ToggleLike(ctx, entryID, me.ID)
	if err != nil {
		return a.report(ctx, "like", err)
	}

	if liked {
		a.println("♥ Liked!")
	} else {
		a.println("♡ Unliked.")
	}
	return nil
}

func (a *App) Comment(ctx context.Context, entryID string) error {
	if _, err := a.visibleEntry(entryID); err != nil {
		return a.report(ctx, "comment", err)
	}

	text, err := GetSimpleText(a.reader, "Your comment 💬", a.out)
	if err != nil {
		return a.report(ctx, "comment", err)
	}

	if _, err := a.entries.AddComment(ctx, entryID, text); err != nil {
		return a.report(ctx, "comment", err)
	}

	a.println("Comment added 💬")
	return nil
}

func (a *App) Delete(ctx context.Context, entryID string) error {
	confirm := func(e models.DiaryEntry) bool {
		return GetConfirm(a.reader, fmt.Sprintf("Delete %q forever?", preview(e.Text)), a.out)
	}

	if err := a.entries.Remove(ctx, entryID, confirm); err != nil {
		return a.report(ctx, "delete", err)
	}

	a.println("Entry deleted.")
	return nil
}

func (a *App) groupName(groupID string) string {
	if groupID == "" {
		return ""
	}
	if g, ok := a.social.Group(groupID); ok {
		return g.Name
	}
	return groupID
}

func preview(text string) string {
	const n = 30
	r := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
