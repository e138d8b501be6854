// moneydash is the command-line surface of the personal-finance tracker:
// merchant categorization, split-rule application, and per-holding
// investment timelines over a local sqlite store.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&initCmd{}, "setup")
	subcommands.Register(&categorizeCmd{}, "transactions")
	subcommands.Register(&applyRulesCmd{}, "transactions")
	subcommands.Register(&timelinesCmd{}, "investments")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
