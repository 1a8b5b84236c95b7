/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/rotblauer/deltafit/cmd"

func main() {
	cmd.Execute()
}
