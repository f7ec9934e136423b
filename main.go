package main

import "github.com/df07/go-recursive-raytracer/cmd"

func main() {
	cmd.Execute()
}
