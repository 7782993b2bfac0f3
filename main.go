package main

import "github.com/earable/s3-lzma-to-data/cmd"

func main() {
	cmd.Execute()
}
