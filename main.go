package main

import "github.com/deploymenttheory/go-virtio/cmd"

func main() {
	cmd.Execute()
}
