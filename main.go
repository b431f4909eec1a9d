package main

import "github.com/stillwaters/ytcatalog/cmd"

func main() {
	cmd.Execute()
}
