package cli

import "context"

func (a *App) Comments(ctx context.Context, arg string) error {
	id, err := parseID(arg, "comments <id>")
	if err != nil {
		return err
	}
	list, err := a.commentService.ListForPost(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.info("No comments yet.")
		return nil
	}
	for _, c := range list {
		printComment(a.out, c)
	}
	return nil
}

func (a *App) AddComment(ctx context.Context, arg string) error {
	id, err := parseID(arg, "comment <id>")
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}

	c, err := a.commentService.Create(ctx, id, title, content)
	if err != nil {
		return err
	}
	a.ok("Comment #%d added.", c.ID)
	return nil
}
