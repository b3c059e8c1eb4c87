package main

import "github.com/de-vri-es/reproducible-panic/cmd/repropanic/cmd"

func main() {
	cmd.Execute()
}
