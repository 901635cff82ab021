package main

import "github.com/attesta/attesta/cmd/attesta"

func main() { attesta.Execute() }
