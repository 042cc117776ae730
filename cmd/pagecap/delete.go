package main

import (
	"fmt"

	"github.com/fwojciec/pagecap"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagecap.Errorf(pagecap.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Clips.DeleteClip(deps.Ctx, c.ID); err != nil {
		if pagecap.ErrorCode(err) == pagecap.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'pagecap list' to see captured clips.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted clip %q\n", c.ID)
	return nil
}
