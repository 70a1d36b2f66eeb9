package main

import (
	"github.com/foomo/sitemapserver/cmd"
)

func main() {
	cmd.Execute()
}
