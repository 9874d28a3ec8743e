package mcp

import (
	"context"
	"fmt"
	"regexp"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/editor"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// mutateFunc reads its arguments, checks them against the session's tree
// and calls handlers. An error leaves the document untouched.
type mutateFunc func(req mcp.CallToolRequest, s editor.Session) error

type mutationResult struct {
	Document  string   `json:"document"`
	Revision  int      `json:"revision"`
	Changed   bool     `json:"changed"`
	CreatedID string   `json:"created_id,omitempty"`
	Actions   []string `json:"actions"`
}

func (t *tools) mutate(fn mutateFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var fnErr error
		res, err := t.docs.Apply(ctx, t.documentFor(req), func(s editor.Session) {
			fnErr = fn(req, s)
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to update document: %v", err)), nil
		}
		if fnErr != nil {
			return mcp.NewToolResultError(fnErr.Error()), nil
		}
		return jsonResult(mutationResult{
			Document:  res.Document.Name,
			Revision:  res.Document.Revision,
			Changed:   res.Changed,
			CreatedID: res.CreatedID,
			Actions:   res.Actions,
		})
	}
}

// nodeArg returns the id in param after checking that it names a node of
// one of kinds.
func nodeArg(req mcp.CallToolRequest, s editor.Session, param string, kinds ...domain.Kind) (string, error) {
	id, err := req.RequireString(param)
	if err != nil {
		return "", fmt.Errorf("%s is required", param)
	}
	n, ok := tree.Find(s.Root(), id)
	if !ok {
		return "", fmt.Errorf("no node with id %q", id)
	}
	for _, k := range kinds {
		if n.Kind() == k {
			return id, nil
		}
	}
	return "", fmt.Errorf("%s %q is a %s", param, id, n.Kind().Label())
}

func priorityArg(req mcp.CallToolRequest) (domain.Priority, error) {
	p := req.GetString("priority", "")
	if p == "" {
		return "", nil
	}
	return domain.ParsePriority(p)
}

func colorArg(req mcp.CallToolRequest) (string, error) {
	c := req.GetString("color", "")
	if c != "" && !colorPattern.MatchString(c) {
		return "", fmt.Errorf("color %q must look like #6366f1", c)
	}
	return c, nil
}

func requiredText(req mcp.CallToolRequest, param string) (string, error) {
	v, err := req.RequireString(param)
	if err != nil || v == "" {
		return "", fmt.Errorf("%s is required", param)
	}
	return v, nil
}

func idParam(desc string) mcp.ToolOption {
	return mcp.WithString("id", mcp.Required(), mcp.Description(desc))
}

func (t *tools) mutationTools() []server.ServerTool {
	var out []server.ServerTool
	add := func(tool mcp.Tool, h server.ToolHandlerFunc) {
		out = append(out, server.ServerTool{Tool: tool, Handler: h})
	}

	priority := mcp.WithString("priority",
		mcp.Description("high, medium or low"),
		mcp.Enum("high", "medium", "low"),
	)

	add(mcp.NewTool("add_category",
		mcp.WithDescription("Append a category to the document. Returns the new category id."),
		withDocument(),
		mcp.WithString("title", mcp.Description("Category title")),
		mcp.WithString("color", mcp.Description("Hex color such as #6366f1")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		color, err := colorArg(req)
		if err != nil {
			return err
		}
		editor.AddCategoryWith(s, req.GetString("title", ""), color)
		return nil
	}))

	add(mcp.NewTool("update_category",
		mcp.WithDescription("Change a category's title or color. Omitted fields keep their value."),
		withDocument(),
		idParam("Category id"),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("color", mcp.Description("New hex color")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", domain.KindCategory)
		if err != nil {
			return err
		}
		color, err := colorArg(req)
		if err != nil {
			return err
		}
		editor.EditCategory(s, id, req.GetString("title", ""), color)
		return nil
	}))

	add(mcp.NewTool("add_section",
		mcp.WithDescription("Append a collapsible section to a category."),
		withDocument(),
		mcp.WithString("category_id", mcp.Required(), mcp.Description("Category id")),
		mcp.WithString("title", mcp.Description("Section title")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		catID, err := nodeArg(req, s, "category_id", domain.KindCategory)
		if err != nil {
			return err
		}
		editor.AddSectionWith(s, catID, req.GetString("title", ""))
		return nil
	}))

	add(mcp.NewTool("edit_section",
		mcp.WithDescription("Rename a section."),
		withDocument(),
		idParam("Section id"),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", domain.KindSection)
		if err != nil {
			return err
		}
		title, err := requiredText(req, "title")
		if err != nil {
			return err
		}
		s.EditSection(id, title)
		return nil
	}))

	add(mcp.NewTool("add_item",
		mcp.WithDescription("Add a to-do item to a category or a section."),
		withDocument(),
		mcp.WithString("parent_id", mcp.Required(), mcp.Description("Category or section id")),
		mcp.WithString("title", mcp.Description("Item title")),
		priority,
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		parentID, err := nodeArg(req, s, "parent_id", domain.KindCategory, domain.KindSection)
		if err != nil {
			return err
		}
		p, err := priorityArg(req)
		if err != nil {
			return err
		}
		editor.AddItemWith(s, parentID, req.GetString("title", ""), p)
		return nil
	}))

	add(mcp.NewTool("edit_item",
		mcp.WithDescription("Change an item's title or priority. Omitted fields keep their value."),
		withDocument(),
		idParam("Item id"),
		mcp.WithString("title", mcp.Description("New title")),
		priority,
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", domain.KindItem)
		if err != nil {
			return err
		}
		p, err := priorityArg(req)
		if err != nil {
			return err
		}
		editor.EditItemFields(s, id, req.GetString("title", ""), p)
		return nil
	}))

	add(mcp.NewTool("add_subtask",
		mcp.WithDescription("Add a checkable subtask to an item or a section."),
		withDocument(),
		mcp.WithString("parent_id", mcp.Required(), mcp.Description("Item or section id")),
		mcp.WithString("title", mcp.Description("Subtask title")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		parentID, err := nodeArg(req, s, "parent_id", domain.KindItem, domain.KindSection)
		if err != nil {
			return err
		}
		editor.AddSubtaskWith(s, parentID, req.GetString("title", ""))
		return nil
	}))

	add(mcp.NewTool("edit_subtask",
		mcp.WithDescription("Rename a subtask."),
		withDocument(),
		idParam("Subtask id"),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", domain.KindSubtask)
		if err != nil {
			return err
		}
		title, err := requiredText(req, "title")
		if err != nil {
			return err
		}
		s.EditSubtask(id, title)
		return nil
	}))

	add(mcp.NewTool("add_note",
		mcp.WithDescription("Attach a free-text note to an item or a section."),
		withDocument(),
		mcp.WithString("parent_id", mcp.Required(), mcp.Description("Item or section id")),
		mcp.WithString("content", mcp.Description("Note text")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		parentID, err := nodeArg(req, s, "parent_id", domain.KindItem, domain.KindSection)
		if err != nil {
			return err
		}
		editor.AddNoteWith(s, parentID, req.GetString("content", ""))
		return nil
	}))

	add(mcp.NewTool("edit_note",
		mcp.WithDescription("Replace a note's text."),
		withDocument(),
		idParam("Note id"),
		mcp.WithString("content", mcp.Required(), mcp.Description("New text")),
	), t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", domain.KindNote)
		if err != nil {
			return err
		}
		content, err := req.RequireString("content")
		if err != nil {
			return fmt.Errorf("content is required")
		}
		s.EditNote(id, content)
		return nil
	}))

	toggles := []struct {
		name, desc string
		kind       domain.Kind
		run        func(editor.Session, string)
	}{
		{"toggle_section", "Collapse or expand a section.", domain.KindSection, editor.Session.ToggleSection},
		{"toggle_item", "Flip an item between done and open.", domain.KindItem, editor.Session.ToggleItem},
		{"toggle_subtask", "Flip a subtask between done and open.", domain.KindSubtask, editor.Session.ToggleSubtask},
	}
	for _, tg := range toggles {
		add(mcp.NewTool(tg.name,
			mcp.WithDescription(tg.desc),
			withDocument(),
			idParam(tg.kind.Label()+" id"),
		), t.byID(tg.kind, tg.run))
	}

	deletes := []struct {
		kind domain.Kind
		run  func(editor.Session, string)
	}{
		{domain.KindCategory, editor.Session.DeleteCategory},
		{domain.KindSection, editor.Session.DeleteSection},
		{domain.KindItem, editor.Session.DeleteItem},
		{domain.KindSubtask, editor.Session.DeleteSubtask},
		{domain.KindNote, editor.Session.DeleteNote},
	}
	for _, d := range deletes {
		label := d.kind.Label()
		add(mcp.NewTool("delete_"+label,
			mcp.WithDescription(fmt.Sprintf("Delete a %s and everything under it.", label)),
			withDocument(),
			idParam(label+" id"),
		), t.byID(d.kind, d.run))
	}
	return out
}

// byID handles tools whose only argument is the id of a node of kind.
func (t *tools) byID(kind domain.Kind, run func(editor.Session, string)) server.ToolHandlerFunc {
	return t.mutate(func(req mcp.CallToolRequest, s editor.Session) error {
		id, err := nodeArg(req, s, "id", kind)
		if err != nil {
			return err
		}
		run(s, id)
		return nil
	})
}
