package main

import "github.com/simp-lee/hrdesk/internal/cli"

func main() {
	cli.Execute()
}
