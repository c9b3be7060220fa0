package main

import "agentcore_spec_agent/cmd"

func main() {
	cmd.Execute()
}
