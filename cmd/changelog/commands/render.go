package commands

import "os"

// RenderCmd implements the 'render' command: parse, then print the canonical
// form. Useful for normalizing hand-edited files.
type RenderCmd struct {
	Write bool   `short:"w" help:"Rewrite the file in place instead of printing"`
	Path  string `arg:"" optional:"" help:"Changelog file to render (defaults to CHANGELOG.md)"`
}

// Run executes the render command.
func (r *RenderCmd) Run(root *CLI) error {
	path := resolveFile(r.Path)
	model, _, err := loadChangelog(path)
	if err != nil {
		return err
	}

	if r.Write {
		return writeChangelog(path, model)
	}
	_, err = os.Stdout.Write(model.Render())
	return err
}
