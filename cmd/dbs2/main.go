package main

import (
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/cli"
)

func main() {
	cli.Execute()
}
