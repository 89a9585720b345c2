package main

import "github.com/surim0n/Github-Thumbnail-Bot/cmd"

func main() {
	cmd.Execute()
}
