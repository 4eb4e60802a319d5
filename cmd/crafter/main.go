package main

import (
	"buildcrafter/cmd/crafter/commands"
	"buildcrafter/lib/osutil"
)

func main() {
	ctx := osutil.SignalContext()
	commands.ExecuteContext(ctx)
}
