package main

import "github.com/oshokin/winpack/cmd/winpack/cmd"

func main() {
	cmd.Execute()
}
