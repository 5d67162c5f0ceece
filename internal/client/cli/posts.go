package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/services"
)

// Posts shows the first page of the feed, optionally filtered by search.
func (a *App) Posts(ctx context.Context, search string) error {
	page, err := a.postService.List(ctx, strings.TrimSpace(search), 1)
	if err != nil {
		return err
	}
	a.showFeed(page)
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	if a.feed == nil || !a.feed.HasNext() {
		a.info("No next page.")
		return nil
	}
	page, err := a.postService.Follow(ctx, a.feed.Next)
	if err != nil {
		return err
	}
	a.showFeed(page)
	return nil
}

func (a *App) PrevPage(ctx context.Context) error {
	if a.feed == nil || !a.feed.HasPrevious() {
		a.info("No previous page.")
		return nil
	}
	page, err := a.postService.Follow(ctx, a.feed.Previous)
	if err != nil {
		return err
	}
	a.showFeed(page)
	return nil
}

func (a *App) showFeed(page *models.Page[models.Post]) {
	a.feed = page
	if len(page.Results) == 0 {
		a.info("No posts found.")
		return
	}
	for _, p := range page.Results {
		printPostLine(a.out, p)
	}

	var nav []string
	if page.HasPrevious() {
		nav = append(nav, "'prev'")
	}
	if page.HasNext() {
		nav = append(nav, "'next'")
	}
	if len(nav) > 0 {
		a.info("%d posts in total, type %s to page.", page.Count, strings.Join(nav, " or "))
	}
}

func (a *App) MyPosts(ctx context.Context) error {
	posts, err := a.postService.Mine(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		a.info("You have no posts yet. Type 'newpost' to write one.")
		return nil
	}
	for _, p := range posts {
		printPostLine(a.out, p)
	}
	return nil
}

func (a *App) ShowPost(ctx context.Context, arg string) error {
	id, err := parseID(arg, "show <id>")
	if err != nil {
		return err
	}
	p, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}
	printPost(a.out, *p)
	return nil
}

func (a *App) NewPost(ctx context.Context) error {
	in, err := a.askPost("", "")
	if err != nil {
		return err
	}
	p, err := a.postService.Create(ctx, in)
	if err != nil {
		return err
	}
	a.ok("Post #%d published.", p.ID)
	return nil
}

// EditPost loads the post first so empty answers keep the current text.
func (a *App) EditPost(ctx context.Context, arg string) error {
	id, err := parseID(arg, "editpost <id>")
	if err != nil {
		return err
	}
	current, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}

	in, err := a.askPost(current.Title, current.Content)
	if err != nil {
		return err
	}
	if _, err := a.postService.Update(ctx, id, in); err != nil {
		return err
	}
	a.ok("Post #%d updated.", id)
	return nil
}

func (a *App) askPost(title, content string) (services.PostInput, error) {
	var in services.PostInput
	var err error

	if in.Title, err = GetTextWithDefault(a.reader, "Title", title, a.out); err != nil {
		return in, err
	}

	prompt := "Content"
	if content != "" {
		prompt = "Content (empty keeps the current text)"
	}
	if in.Content, err = getMultiline(a.reader, prompt, a.out); err != nil {
		return in, err
	}
	if in.Content == "" {
		in.Content = content
	}

	if in.Image, err = a.askAttachment("Image path", "imagem"); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) DeletePost(ctx context.Context, arg string) error {
	id, err := parseID(arg, "delete <id>")
	if err != nil {
		return err
	}

	sure, err := GetConfirmation(a.reader, fmt.Sprintf("Delete post #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !sure {
		a.info("Cancelled.")
		return nil
	}

	if err := a.postService.Delete(ctx, id); err != nil {
		return err
	}
	a.ok("Post #%d deleted.", id)
	return nil
}
