package main

import "github.com/Reiker1894/isekai-system/cmd/isekai/root"

func main() {
	root.Execute()
}
