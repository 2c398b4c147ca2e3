// Package main provides libraryctl, a command line client for the librarian server.
package main

import "github.com/listenupapp/librarian-server/cmd/libraryctl/commands"

func main() {
	commands.Execute()
}
