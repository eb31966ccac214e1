package sample

import "strings"

type Greeter struct {
	Name string
}

func Greet(g Greeter) string {
	return "hello " + strings.ToUpper(g.Name)
}
