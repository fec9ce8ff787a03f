package main

import "github.com/nutricoach/nutricoach/cmd/nutricoach"

func main() {
	nutricoach.Execute()
}
