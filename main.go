package main

import "github.com/sidhant-sriv/roomshare-api/cmd"

func main() {
	cmd.Execute()
}
