package main

import (
	"github.com/m-mizutani/glueschema/pkg/handler"
)

var logger = handler.Logger

func main() {
	handler.StartLambda(Handler)
}
