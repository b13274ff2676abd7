package main

import (
	_ "time/tzdata"

	"github.com/N08I40K/schedule-parser-next/internal/bootstrap"
)

func main() {
	bootstrap.Run()
}
