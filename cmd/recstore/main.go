/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/recstore/cmd/recstore/cmd"

func main() {
	cmd.Execute()
}
