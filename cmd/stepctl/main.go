package main

import "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/stepctl"

func main() {
	stepctl.Execute()
}
