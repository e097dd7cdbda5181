package main

import "github.com/oshokin/houdini-package/cmd/houdini-packager/cmd"

func main() {
	cmd.Execute()
}
