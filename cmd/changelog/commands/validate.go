package commands

import "fmt"

// ValidateCmd implements the 'validate' command: a strict parse that either
// succeeds quietly or reports the blocking problems.
type ValidateCmd struct {
	Path string `arg:"" optional:"" help:"Changelog file to validate (defaults to CHANGELOG.md)"`
}

// Run executes the validate command.
func (v *ValidateCmd) Run(root *CLI) error {
	path := resolveFile(v.Path)
	model, _, err := loadChangelog(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: OK (%d release(s))\n", path, model.Releases.Len())
	return nil
}
