package main

import (
	"wishlist-stock/cmd/wishlist-stock/commands"
	"wishlist-stock/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
