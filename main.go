/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "bundlepacks/cmd"

func main() {
	cmd.Execute()
}
